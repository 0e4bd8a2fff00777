package cmdline

import "strings"

// Split partitions tokens into flag-style switches and positional
// parameters. A token beginning with "-" contributes its remainder, with
// the single leading dash stripped, to switches; every other token is a
// parameter. Encounter order is preserved within each group.
func Split(tokens []string) (switches, params []string) {
	switches = []string{}
	params = []string{}
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			switches = append(switches, tok[1:])
		} else {
			params = append(params, tok)
		}
	}
	return switches, params
}
