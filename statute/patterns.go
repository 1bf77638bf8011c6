package statute

import "regexp"

// Structural markers for Polish codified law as published by ISAP.
// Articles open with "Art. N." where N may carry a letter or superscript
// suffix (e.g. Art. 417¹). Paragraphs open with "§ n.".
var (
	articleRe = regexp.MustCompile(`(?m)^[ \t]*Art\.\s*(\d+[a-ząćęłńóśźż]?[¹²³⁴⁵⁶⁷⁸⁹⁰]*)\.`)

	paragraphRe = regexp.MustCompile(`§\s*(\d+[a-z]?[¹²³⁴⁵⁶⁷⁸⁹⁰]*)\.`)

	bookRe     = regexp.MustCompile(`(?m)^[ \t]*(KSIĘGA\s+[A-ZĄĆĘŁŃÓŚŹŻ ]+)\s*$`)
	divisionRe = regexp.MustCompile(`(?m)^[ \t]*((?:TYTUŁ|DZIAŁ)\s+[IVXLC]+[A-ZĄĆĘŁŃÓŚŹŻ ]*)\s*$`)
	chapterRe  = regexp.MustCompile(`(?m)^[ \t]*(Rozdział\s+[IVXLC\d]+[^\n]*)\s*$`)

	// Repealed articles are printed as "(uchylony)" or "(skreślony)".
	deletedRe = regexp.MustCompile(`\((?:uchylony|uchylona|skreślony|skreślona)\)`)

	// Editorial titles are bracketed, e.g. "[Odpowiedzialność deliktowa]".
	titleRe = regexp.MustCompile(`\[([^\[\]\n]+)\]`)
)

const (
	// deletedScanWindow bounds the lexical scan for the repeal marker to the
	// head of the article body. A marker further in is treated as content.
	deletedScanWindow = 100

	// titleScanWindow bounds the bracketed-title scan.
	titleScanWindow = 200

	// minPreambleLen is the minimum length for text preceding the first
	// article marker to be emitted as a synthetic preamble unit.
	minPreambleLen = 100
)
