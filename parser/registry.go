package parser

import "github.com/aldas/adcp-ingest"

// NewRouter builds the nmea.Router carrying all 21 known sentence prefixes. opts
// threads the implementer-resolved Open Question choices (see Options) through the
// instrument-configuration parsers.
func NewRouter(opts Options) *nmea.Router {
	return nmea.NewRouter(map[string]nmea.ParserFunc{
		"PNORI":  ParsePNORI(opts),
		"PNORI1": ParsePNORI1(opts),
		"PNORI2": ParsePNORI2(opts),

		"PNORS":  ParsePNORS,
		"PNORS1": ParsePNORS1,
		"PNORS2": ParsePNORS2,
		"PNORS3": ParsePNORS3,
		"PNORS4": ParsePNORS4,

		"PNORC":  ParsePNORC,
		"PNORC1": ParsePNORC1,
		"PNORC2": ParsePNORC2,
		"PNORC3": ParsePNORC3,
		"PNORC4": ParsePNORC4,

		"PNORH3": ParsePNORH3,
		"PNORH4": ParsePNORH4,

		"PNORA": ParsePNORA,
		"PNORW": ParsePNORW,
		"PNORB": ParsePNORB,
		"PNORE": ParsePNORE,
		"PNORF": ParsePNORF,

		"PNORWD": ParsePNORWD,
	})
}
