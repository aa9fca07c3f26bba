package targets

import "strings"

// Canonical sector tags used for reporting. Decision logic never branches on
// sector; the tags are carried through to the output only.
const (
	SectorBrick       = "BRICK"
	SectorPaper       = "PAPER"
	SectorFundOfFunds = "FOF"
	SectorHybrid      = "HYBRID"
	SectorLogistics   = "LOGISTICS"
	SectorOffices     = "OFFICES"
	SectorRetail      = "RETAIL"
	SectorOther       = "OTHER"
)

// sectorAliases maps free-text and legacy sector labels, as imported from
// spreadsheets over the years, onto canonical tags.
var sectorAliases = map[string]string{
	"BRICK":           SectorBrick,
	"TIJOLO":          SectorBrick,
	"FUNDO DE TIJOLO": SectorBrick,
	"REAL ESTATE":     SectorBrick,
	"PAPER":           SectorPaper,
	"PAPEL":           SectorPaper,
	"RECEBIVEIS":      SectorPaper,
	"CRI":             SectorPaper,
	"FOF":             SectorFundOfFunds,
	"FUNDO DE FUNDOS": SectorFundOfFunds,
	"FUND OF FUNDS":   SectorFundOfFunds,
	"HYBRID":          SectorHybrid,
	"HIBRIDO":         SectorHybrid,
	"MISTO":           SectorHybrid,
	"LOGISTICS":       SectorLogistics,
	"LOGISTICA":       SectorLogistics,
	"GALPOES":         SectorLogistics,
	"OFFICES":         SectorOffices,
	"LAJES":           SectorOffices,
	"LAJES CORPORATIVAS": SectorOffices,
	"RETAIL":             SectorRetail,
	"SHOPPINGS":          SectorRetail,
	"SHOPPING":           SectorRetail,
}

// NormalizeSector maps a raw sector label to its canonical tag.
// Unknown labels fall back to OTHER; empty stays empty.
func NormalizeSector(raw string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if canonical, ok := sectorAliases[stripAccents(trimmed)]; ok {
		return canonical
	}
	return SectorOther
}

// stripAccents folds the accented characters that appear in legacy
// Portuguese sector labels.
func stripAccents(s string) string {
	replacer := strings.NewReplacer(
		"Á", "A", "Â", "A", "Ã", "A",
		"É", "E", "Ê", "E",
		"Í", "I",
		"Ó", "O", "Ô", "O", "Õ", "O",
		"Ú", "U",
		"Ç", "C",
	)
	return replacer.Replace(s)
}
