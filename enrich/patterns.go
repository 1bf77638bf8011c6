package enrich

import "regexp"

// docketPatterns are tried in order; the first match wins. The labeled
// "Sygn. akt" form is most reliable, the CZP form catches resolution
// headers, and the generic form is the last resort.
var docketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Sygn\.\s*akt[.:]?\s*([IVXLC]+\s+[A-Z][A-Za-z]{0,4}\s+\d+/\d{2,4})`),
	regexp.MustCompile(`\b([IVXLC]+\s+CZP\s+\d+/\d{2,4})\b`),
	regexp.MustCompile(`\b([IVXLC]+\s+[A-Z]{2,4}\s+\d+/\d{2,4})\b`),
}

// datePhraseRe matches the labeled date phrase used in ruling headers,
// e.g. "z dnia 12 marca 2020 r.".
var datePhraseRe = regexp.MustCompile(`(?:z\s+)?dnia\s+(\d{1,2}\s+\p{Ll}+\s+\d{4})(?:\s*r\.?)?`)

// judgesLineRe finds the panel line; individual names are comma-split
// from the match.
var judgesLineRe = regexp.MustCompile(`(?m)^.*\bSS[NAOR]\b.*$`)

// judgeNoiseRe strips roles appended to a panel member's name.
var judgeNoiseRe = regexp.MustCompile(`\((?:przewodniczący|sprawozdawca|uzasadnienie)[^)]*\)`)

// entityPattern is one row of the fixed extraction table. Group selects
// the submatch used as the entity span; 0 takes the whole match.
type entityPattern struct {
	re    *regexp.Regexp
	label string
	group int
}

// entityTable is scanned row by row over each paragraph. Rows are
// independent: overlapping spans may produce entities under several
// labels, and no deduplication is performed because downstream consumers
// filter by label.
var entityTable = []entityPattern{
	{
		re:    regexp.MustCompile(`\bart\.\s*\d+[¹²³⁴⁵⁶⁷⁸⁹⁰]*[a-z]?(?:\s*§\s*\d+[a-z]?)?(?:\s+k\.[a-z]+\.(?:[a-z]+\.)*)?`),
		label: "LAW_REF",
	},
	{
		re:    regexp.MustCompile(`\b[IVXLC]+\s+[A-Z]{2,4}\s+\d+/\d{2,4}\b`),
		label: "DOCKET",
	},
	{
		re:    regexp.MustCompile(`(?:SSN|SSA|SSO|SSR|[Ss]ędzia)\s+(\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)+)`),
		label: "PERSON",
		group: 1,
	},
	{
		re:    regexp.MustCompile(`\bSąd(?:u|owi|em|zie)?\s+(?:Najwyższ\p{Ll}+|Apelacyjn\p{Ll}+|Okręgow\p{Ll}+|Rejonow\p{Ll}+)(?:\s+w\s+\p{Lu}\p{Ll}+)?`),
		label: "ORG",
	},
	{
		re:    regexp.MustCompile(`\b\d{1,2}\s+(?:stycznia|lutego|marca|kwietnia|maja|czerwca|lipca|sierpnia|września|października|listopada|grudnia)\s+\d{4}(?:\s*r\.?)?`),
		label: "DATE",
	},
	{
		re:    regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		label: "DATE",
	},
}
