package model

import "strings"

// Team is the in-clan squad a player belongs to. PLTE is the top team,
// PL1 through PL9 are the feeder teams.
type Team string

const (
	TEAM_UNKNOWN Team = "UNK"
	TEAM_PLTE    Team = "PLTE"
	TEAM_PL1     Team = "PL1"
	TEAM_PL2     Team = "PL2"
	TEAM_PL3     Team = "PL3"
	TEAM_PL4     Team = "PL4"
	TEAM_PL5     Team = "PL5"
	TEAM_PL6     Team = "PL6"
	TEAM_PL7     Team = "PL7"
	TEAM_PL8     Team = "PL8"
	TEAM_PL9     Team = "PL9"
)

// ParseTeam returns TEAM_UNKNOWN for anything it does not recognize.
func ParseTeam(s string) Team {
	switch t := Team(strings.ToUpper(strings.TrimSpace(s))); t {
	case TEAM_PLTE, TEAM_PL1, TEAM_PL2, TEAM_PL3, TEAM_PL4,
		TEAM_PL5, TEAM_PL6, TEAM_PL7, TEAM_PL8, TEAM_PL9:
		return t
	default:
		return TEAM_UNKNOWN
	}
}

// Division is a season's league placement. CC is the Champions Cup.
type Division string

const (
	DIV_NONE Division = ""
	DIV_CC   Division = "CC"
	DIV_1    Division = "DIV1"
	DIV_2    Division = "DIV2"
	DIV_3    Division = "DIV3"
	DIV_4    Division = "DIV4"
	DIV_5    Division = "DIV5"
	DIV_6    Division = "DIV6"
	DIV_7    Division = "DIV7"
)

// ParseDivision accepts the full form ("DIV3", "CC") and the bare digit
// shorthand ("3").
func ParseDivision(s string) (Division, bool) {
	in := strings.ToUpper(strings.TrimSpace(s))
	if in == "" {
		return DIV_NONE, true
	}
	if len(in) == 1 && in[0] >= '1' && in[0] <= '7' {
		return Division("DIV" + in), true
	}
	switch d := Division(in); d {
	case DIV_CC, DIV_1, DIV_2, DIV_3, DIV_4, DIV_5, DIV_6, DIV_7:
		return d, true
	default:
		return DIV_NONE, false
	}
}
