package service_test

import (
	"reflect"
	"testing"

	"github.com/GLPer-Ltd/loganhealth-intake/internal/model"
	"github.com/GLPer-Ltd/loganhealth-intake/internal/service"
)

func firstMember(g service.CheckboxGroup) string {
	for _, o := range g.Options() {
		if o.Value != g.None {
			return o.Value
		}
	}
	return ""
}

func TestCheckboxNoneExcludesOtherMembers(t *testing.T) {
	t.Parallel()
	for _, g := range service.CheckboxGroups() {
		member := firstMember(g)

		sel, err := g.Select(member, g.None)
		if err != nil {
			t.Fatalf("%s: select: %v", g.Name(), err)
		}
		if !reflect.DeepEqual(sel, model.Selection{g.None}) {
			t.Fatalf("%s: member then none should leave only none, got %v", g.Name(), sel)
		}

		sel, err = g.Select(g.None, member)
		if err != nil {
			t.Fatalf("%s: select: %v", g.Name(), err)
		}
		if !reflect.DeepEqual(sel, model.Selection{member}) {
			t.Fatalf("%s: none then member should leave only the member, got %v", g.Name(), sel)
		}
	}
}

func TestCheckboxToggleKeepsVocabularyOrder(t *testing.T) {
	t.Parallel()
	sel, err := service.Conditions.Toggle(nil, "pcos", true)
	if err != nil {
		t.Fatalf("toggle pcos: %v", err)
	}
	sel, err = service.Conditions.Toggle(sel, "Type2Diabetes", true)
	if err != nil {
		t.Fatalf("toggle type2diabetes: %v", err)
	}
	if want := (model.Selection{"type2diabetes", "pcos"}); !reflect.DeepEqual(sel, want) {
		t.Fatalf("expected %v, got %v", want, sel)
	}

	sel, err = service.Conditions.Toggle(sel, "pcos", false)
	if err != nil {
		t.Fatalf("untoggle pcos: %v", err)
	}
	if want := (model.Selection{"type2diabetes"}); !reflect.DeepEqual(sel, want) {
		t.Fatalf("expected %v, got %v", want, sel)
	}
}

func TestCheckboxRejectsUnknownTag(t *testing.T) {
	t.Parallel()
	if _, err := service.SpecificMedications.Toggle(nil, "aspirin", true); err == nil {
		t.Fatalf("expected unknown medication error")
	}
	if _, err := service.GallbladderIssues.Select("gallstones", "nope"); err == nil {
		t.Fatalf("expected unknown gallbladder issue error")
	}
}

func TestCheckboxNormalizeRepairsSelection(t *testing.T) {
	t.Parallel()
	got := service.MedicalHistory.Normalize(model.Selection{"retinopathy", "bogus", "none_history"})
	if want := (model.Selection{"none_history"}); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := service.MedicalHistory.Normalize(model.Selection{"bogus"}); got != nil {
		t.Fatalf("expected nil selection, got %v", got)
	}
}

func TestCheckboxFormat(t *testing.T) {
	t.Parallel()
	if got := service.AdditionalHistory.Format(nil); got != "None selected" {
		t.Fatalf("expected None selected, got %q", got)
	}
	got := service.Conditions.Format(model.Selection{"type2diabetes", "sleepapnoea"})
	if want := "Type 2 Diabetes, Obstructive Sleep Apnoea"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
