package report

import (
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/hyperifyio/filingcheck/internal/taxonomy"
	"github.com/hyperifyio/filingcheck/internal/validation"
)

const invalidDoc = `<html xmlns:ix="http://www.xbrl.org/2013/inlineXBRL"><body>` +
	`<p><ix:nonNumeric name="uk-bus:EntityCurrentLegalOrRegisteredName" contextRef="c9">[Company Name]</ix:nonNumeric></p>` +
	`</body></html>`

func TestRenderSectionsAndBanner(t *testing.T) {
	res := validation.New(nil).Validate(invalidDoc, taxonomy.Small)
	out := Render(res)

	if !strings.HasPrefix(out, "FILING VALIDATION: FAILED") {
		t.Errorf("report must open with the failure banner, got %q", out[:40])
	}
	for _, section := range []string{"# Statistics", "# Errors", "# Critical placeholders", "# Warnings", "# Conclusion"} {
		if !strings.Contains(out, section) {
			t.Errorf("report missing section %q", section)
		}
	}
	if !strings.Contains(out, string(validation.CodeMissingNamespace)) {
		t.Errorf("report must list diagnostic codes, got:\n%s", out)
	}
	if !strings.Contains(out, "must not be submitted") {
		t.Error("failed report must state the submission block")
	}
}

func TestRenderDoesNotMutateResult(t *testing.T) {
	res := validation.New(nil).Validate(invalidDoc, taxonomy.Small)
	// slices.Clone keeps nil slices nil, so the comparison below cannot
	// report a spurious difference for lists with no findings.
	before := struct {
		errs, warns, places []validation.Diagnostic
		valid               bool
	}{
		slices.Clone(res.Errors),
		slices.Clone(res.Warnings),
		slices.Clone(res.Placeholders),
		res.Valid,
	}
	_ = Render(res)
	if !reflect.DeepEqual(before.errs, res.Errors) ||
		!reflect.DeepEqual(before.warns, res.Warnings) ||
		!reflect.DeepEqual(before.places, res.Placeholders) ||
		before.valid != res.Valid {
		t.Fatal("rendering must not alter the result")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	res := validation.New(nil).Validate(invalidDoc, taxonomy.Small)
	if Render(res) != Render(res) {
		t.Fatal("rendering the same result twice must be identical")
	}
}

func TestRenderPassedBanner(t *testing.T) {
	res := &validation.Result{Valid: true}
	out := Render(res)
	if !strings.HasPrefix(out, "FILING VALIDATION: PASSED") {
		t.Errorf("expected the passed banner, got %q", out[:40])
	}
	if !strings.Contains(out, "may be submitted") {
		t.Error("passed report must state the submission go-ahead")
	}
}

func TestWritePDF(t *testing.T) {
	res := validation.New(nil).Validate(invalidDoc, taxonomy.Small)
	out := filepath.Join(t.TempDir(), "report.pdf")
	if err := WritePDF(res, out); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
}
