package normalize

import (
	"strings"

	"github.com/XayHanmonty/id-verification-poc/core/docnumber"
	"github.com/XayHanmonty/id-verification-poc/core/record"
)

// Rule names a post-processing step that changed a record.
type Rule string

const (
	RuleDocumentType       Rule = "document_type"
	RuleCalifornia         Rule = "california"
	RuleCaliforniaWeak     Rule = "california_weak"
	RuleDocumentNumber     Rule = "document_number"
	RulePromote            Rule = "promote"
	RuleNameTypo           Rule = "name_typo"
	RuleNameSplit          Rule = "name_split"
	RuleDropAdditionalInfo Rule = "drop_additional_info"
)

// Correction describes one change made by PostProcessWithReport.
type Correction struct {
	Rule  Rule
	Field string
	From  string
	To    string
}

const (
	typePassport        = "Passport"
	typeDriversLicense  = "Driver's License"
	typeCaliforniaDL    = "California Driver's License"
	californiaZipMarker = "95818"
)

// promotable are the keys moved out of additional_info when the model nested
// them instead of returning them at the top level.
var promotable = []string{
	record.KeyFirstName,
	record.KeyLastName,
	record.KeyAddress,
	record.KeyDateOfBirth,
	record.KeyExpirationDate,
	record.KeyIssueDate,
	record.KeyGender,
}

// PostProcess applies the document corrections to a copy of rec.
func PostProcess(rec record.Record, hint record.SourceHint) record.Record {
	out, _ := PostProcessWithReport(rec, hint)
	return out
}

// PostProcessWithReport is PostProcess that also returns every correction
// that fired, in order. The input record, including additional_info, is
// never modified.
func PostProcessWithReport(rec record.Record, hint record.SourceHint) (record.Record, []Correction) {
	p := &processor{rec: rec.Clone(), hint: hint}
	if p.rec == nil {
		p.rec = record.Record{}
	}

	p.documentType()
	p.california()
	p.documentNumber()
	p.promote()
	p.names()
	p.dropEmptyAdditionalInfo()

	return p.rec, p.corrections
}

type processor struct {
	rec         record.Record
	hint        record.SourceHint
	corrections []Correction
}

func (p *processor) set(rule Rule, field string, value any) {
	from := p.rec.String(field)
	p.rec[field] = value
	to, _ := value.(string)
	if from != to || rule == RulePromote {
		p.corrections = append(p.corrections, Correction{Rule: rule, Field: field, From: from, To: to})
	}
}

func (p *processor) lower(field string) string {
	return strings.ToLower(p.rec.String(field))
}

func (p *processor) documentType() {
	docType := p.lower(record.KeyDocumentType)
	switch {
	case p.hint.Contains("passport") && docType != "passport":
		p.set(RuleDocumentType, record.KeyDocumentType, typePassport)
	case p.hint.Contains("license") && strings.Contains(docType, "passport"):
		p.set(RuleDocumentType, record.KeyDocumentType, typeDriversLicense)
	}
}

// california matches the bare "ca" substring as well as "california", so
// countries such as "Canada" also qualify. Those matches are reported as
// RuleCaliforniaWeak.
func (p *processor) california() {
	if !p.hint.Contains("license") {
		return
	}
	country := p.lower(record.KeyIssuingCountry)
	strong := strings.Contains(country, "california") ||
		strings.Contains(p.lower(record.KeyAddress), californiaZipMarker)
	weak := strings.Contains(country, "ca")
	switch {
	case strong:
		p.set(RuleCalifornia, record.KeyDocumentType, typeCaliforniaDL)
	case weak:
		p.set(RuleCaliforniaWeak, record.KeyDocumentType, typeCaliforniaDL)
	}
}

func (p *processor) documentNumber() {
	num, ok := p.rec[record.KeyDocumentNumber].(string)
	if !ok || !strings.Contains(p.lower(record.KeyDocumentType), "california") {
		return
	}
	if fixed := docnumber.NormalizeCalifornia(num); fixed != num {
		p.set(RuleDocumentNumber, record.KeyDocumentNumber, fixed)
	}
}

func (p *processor) promote() {
	if !p.rec.Has(record.KeyAdditionalInfo) {
		return
	}
	info := p.rec.AdditionalInfo()
	if info == nil {
		return
	}

	for _, key := range promotable {
		if p.rec.Has(key) {
			continue
		}
		if v, ok := info[key]; ok {
			delete(info, key)
			p.set(RulePromote, key, v)
		}
	}
	if !p.rec.Has(record.KeyGender) {
		if v, ok := info[record.KeySex]; ok {
			delete(info, record.KeySex)
			p.set(RulePromote, record.KeyGender, v)
		}
	}
}

func (p *processor) names() {
	fullName, ok := p.rec[record.KeyFullName].(string)
	if !ok {
		return
	}

	upper := strings.ToUpper(fullName)
	if strings.Contains(upper, "CARDHOLDER") || strings.Contains(upper, "CORDHOLDER") {
		if fixed := strings.ReplaceAll(fullName, "CORDHOLDER", "CARDHOLDER"); fixed != fullName {
			p.set(RuleNameTypo, record.KeyFullName, fixed)
			fullName = fixed
		}
	}

	if p.rec.Has(record.KeyFirstName) || p.rec.Has(record.KeyLastName) {
		return
	}
	parts := strings.Fields(fullName)
	if len(parts) < 2 {
		return
	}
	p.set(RuleNameSplit, record.KeyFirstName, parts[0])
	p.set(RuleNameSplit, record.KeyLastName, strings.Join(parts[1:], " "))
}

func (p *processor) dropEmptyAdditionalInfo() {
	v, ok := p.rec[record.KeyAdditionalInfo]
	if !ok || !record.IsEmptyValue(v) {
		return
	}
	delete(p.rec, record.KeyAdditionalInfo)
	p.corrections = append(p.corrections, Correction{
		Rule:  RuleDropAdditionalInfo,
		Field: record.KeyAdditionalInfo,
	})
}
