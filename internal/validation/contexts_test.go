package validation

import (
	"testing"

	"github.com/hyperifyio/filingcheck/internal/document"
	"github.com/hyperifyio/filingcheck/internal/taxonomy"
)

func checkDeclarations(t *testing.T, body string) *Result {
	t.Helper()
	tree, err := document.Parse(`<html><body>` + body + `</body></html>`)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	res := &Result{}
	New(nil).checkContextsAndUnits(tree, taxonomy.Micro, res)
	return res
}

const validUnit = `<xbrli:unit id="GBP"><xbrli:measure>iso4217:GBP</xbrli:measure></xbrli:unit>`

func contextWithPeriod(period string) string {
	return `<xbrli:context id="c1">` +
		`<xbrli:entity><xbrli:identifier scheme="s">1</xbrli:identifier></xbrli:entity>` +
		`<xbrli:period>` + period + `</xbrli:period>` +
		`</xbrli:context>` + validUnit
}

func TestPeriodShapes(t *testing.T) {
	cases := []struct {
		name   string
		period string
		want   Code
	}{
		{"instant and range is ambiguous",
			`<xbrli:instant>2023-12-31</xbrli:instant><xbrli:startDate>2023-01-01</xbrli:startDate><xbrli:endDate>2023-12-31</xbrli:endDate>`,
			CodeAmbiguousContextPeriod},
		{"neither shape is invalid", ``, CodeInvalidContextPeriod},
		{"bad instant date",
			`<xbrli:instant>31/12/2023</xbrli:instant>`,
			CodeInvalidInstantDate},
		{"bad start date",
			`<xbrli:startDate>2023-1-1</xbrli:startDate><xbrli:endDate>2023-12-31</xbrli:endDate>`,
			CodeInvalidStartDate},
		{"bad end date",
			`<xbrli:startDate>2023-01-01</xbrli:startDate><xbrli:endDate>soon</xbrli:endDate>`,
			CodeInvalidEndDate},
		{"end before start",
			`<xbrli:startDate>2023-12-31</xbrli:startDate><xbrli:endDate>2023-01-01</xbrli:endDate>`,
			CodeInvalidDateRange},
	}
	for _, tc := range cases {
		res := checkDeclarations(t, contextWithPeriod(tc.period))
		if countCode(res.Errors, tc.want) != 1 {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.want, codes(res.Errors))
		}
	}
}

func TestEndEqualToStartIsRejected(t *testing.T) {
	res := checkDeclarations(t, contextWithPeriod(
		`<xbrli:startDate>2023-06-30</xbrli:startDate><xbrli:endDate>2023-06-30</xbrli:endDate>`))
	if countCode(res.Errors, CodeInvalidDateRange) != 1 {
		t.Fatalf("end must be strictly after start, got %v", codes(res.Errors))
	}
}

func TestWellFormedDurationContextPasses(t *testing.T) {
	res := checkDeclarations(t, contextWithPeriod(
		`<xbrli:startDate>2023-01-01</xbrli:startDate><xbrli:endDate>2023-12-31</xbrli:endDate>`))
	if len(res.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", codes(res.Errors))
	}
}

func TestWellFormedInstantContextPasses(t *testing.T) {
	res := checkDeclarations(t, contextWithPeriod(`<xbrli:instant>2023-12-31</xbrli:instant>`))
	if len(res.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", codes(res.Errors))
	}
}

func TestContextStructuralDefects(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Code
	}{
		{"missing id",
			`<xbrli:context><xbrli:entity><xbrli:identifier scheme="s">1</xbrli:identifier></xbrli:entity>` +
				`<xbrli:period><xbrli:instant>2023-12-31</xbrli:instant></xbrli:period></xbrli:context>` + validUnit,
			CodeContextMissingID},
		{"missing entity",
			`<xbrli:context id="c1"><xbrli:period><xbrli:instant>2023-12-31</xbrli:instant></xbrli:period></xbrli:context>` + validUnit,
			CodeContextMissingEntity},
		{"entity without identifier",
			`<xbrli:context id="c1"><xbrli:entity></xbrli:entity>` +
				`<xbrli:period><xbrli:instant>2023-12-31</xbrli:instant></xbrli:period></xbrli:context>` + validUnit,
			CodeContextMissingIdentifier},
		{"missing period",
			`<xbrli:context id="c1"><xbrli:entity><xbrli:identifier scheme="s">1</xbrli:identifier></xbrli:entity></xbrli:context>` + validUnit,
			CodeContextMissingPeriod},
	}
	for _, tc := range cases {
		res := checkDeclarations(t, tc.body)
		if countCode(res.Errors, tc.want) != 1 {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.want, codes(res.Errors))
		}
	}
}

func TestUnitDefects(t *testing.T) {
	ctx := contextWithPeriod(`<xbrli:instant>2023-12-31</xbrli:instant>`)
	// strip the valid unit appended by the helper
	ctx = ctx[:len(ctx)-len(validUnit)]

	res := checkDeclarations(t, ctx+`<xbrli:unit><xbrli:measure>iso4217:GBP</xbrli:measure></xbrli:unit>`)
	if countCode(res.Errors, CodeUnitMissingID) != 1 {
		t.Errorf("expected UNIT_MISSING_ID, got %v", codes(res.Errors))
	}

	res = checkDeclarations(t, ctx+`<xbrli:unit id="GBP"></xbrli:unit>`)
	if countCode(res.Errors, CodeUnitMissingMeasure) != 1 {
		t.Errorf("expected UNIT_MISSING_MEASURE, got %v", codes(res.Errors))
	}
}

func TestNoDeclarationsAtAll(t *testing.T) {
	res := checkDeclarations(t, `<p>nothing declared</p>`)
	if countCode(res.Errors, CodeMissingContexts) != 1 || countCode(res.Errors, CodeMissingUnits) != 1 {
		t.Fatalf("expected MISSING_CONTEXTS and MISSING_UNITS, got %v", codes(res.Errors))
	}
}
