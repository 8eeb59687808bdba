package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appforge/appforge/internal/engine"
)

func newTestWizard(t *testing.T) *Wizard {
	t.Helper()
	eng, err := engine.NewEngine(t.TempDir(), "0.1.0-test")
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return NewWizard(eng)
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestUpdateSelectionWrapsAround(t *testing.T) {
	if got := updateSelection(keyRune('k'), 0, 3); got != 2 {
		t.Errorf("expected wrap to last entry, got %d", got)
	}
	if got := updateSelection(keyRune('j'), 2, 3); got != 0 {
		t.Errorf("expected wrap to first entry, got %d", got)
	}
	if got := updateSelection(keyEnter(), 1, 3); got != 1 {
		t.Errorf("expected enter to leave selection alone, got %d", got)
	}
}

func TestWizardStepFlow(t *testing.T) {
	w := newTestWizard(t)

	if w.step != stepDescription {
		t.Fatalf("expected wizard to start at description, got %d", w.step)
	}

	// Empty description must not advance
	w.Update(keyEnter())
	if w.step != stepDescription {
		t.Error("expected empty description to be rejected")
	}

	w.description.SetValue("an online store with a shopping cart")
	w.Update(keyEnter())
	if w.step != stepName {
		t.Fatalf("expected name step, got %d", w.step)
	}

	// Name is optional
	w.Update(keyEnter())
	if w.step != stepExperience {
		t.Fatalf("expected experience step, got %d", w.step)
	}

	w.Update(keyEnter())
	if w.step != stepPhase {
		t.Fatalf("expected phase step, got %d", w.step)
	}

	w.Update(keyEnter())
	if w.step != stepResult {
		t.Fatalf("expected result step, got %d", w.step)
	}
	if !w.result.Success {
		t.Fatalf("expected successful generation, got %q", w.result.Error)
	}
	if w.result.Metadata.Archetype != "ecommerce" {
		t.Errorf("expected ecommerce inferred, got %s", w.result.Metadata.Archetype)
	}
}

func TestWizardEscapeGoesBack(t *testing.T) {
	w := newTestWizard(t)

	w.description.SetValue("a personal blog")
	w.Update(keyEnter())
	if w.step != stepName {
		t.Fatalf("expected name step, got %d", w.step)
	}

	w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if w.step != stepDescription {
		t.Errorf("expected esc to return to description, got %d", w.step)
	}
}

func TestWizardFeedbackRecordedOnce(t *testing.T) {
	w := newTestWizard(t)

	w.description.SetValue("an online store with stripe payment")
	w.Update(keyEnter())
	w.Update(keyEnter())
	w.Update(keyEnter())
	w.Update(keyEnter())

	if w.step != stepResult {
		t.Fatalf("expected result step, got %d", w.step)
	}

	w.Update(keyRune('h'))
	if w.feedbackMsg == "" {
		t.Error("expected feedback confirmation after pressing h")
	}

	first := w.feedbackMsg
	w.Update(keyRune('n'))
	if w.feedbackMsg != first {
		t.Error("expected repeat feedback to be ignored")
	}
}

func TestWizardVariantBrowser(t *testing.T) {
	w := newTestWizard(t)

	w.description.SetValue("an online store with stripe payment")
	w.Update(keyEnter())
	w.Update(keyEnter())
	w.Update(keyEnter())
	w.Update(keyEnter())

	w.Update(keyRune('v'))
	if w.step != stepVariants {
		t.Fatalf("expected variants step, got %d", w.step)
	}
	if len(w.variantList.Items()) == 0 {
		t.Error("expected registered variants listed for ecommerce")
	}

	w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if w.step != stepResult {
		t.Errorf("expected esc to return to result, got %d", w.step)
	}
}

func TestWizardResultView(t *testing.T) {
	w := newTestWizard(t)

	w.description.SetValue("an internal admin dashboard with charts")
	w.Update(keyEnter())
	w.Update(keyEnter())
	w.Update(keyEnter())
	w.Update(keyEnter())

	view := w.View()
	if !strings.Contains(view, "confidence:") {
		t.Error("expected metadata line in result view")
	}
}
