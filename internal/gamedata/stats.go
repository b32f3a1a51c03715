package gamedata

// StatBlock holds the eleven base attributes shared by actors and enemies.
// The three Tri-Śarīra domains map onto them as:
//
//	body   -> STR, END, DEF, SPD
//	mind   -> FOC, ACC, INS, WILL
//	spirit -> MAG, PRA, RES, WILL
type StatBlock struct {
	STR  int `json:"STR"`
	END  int `json:"END"`
	DEF  int `json:"DEF"`
	SPD  int `json:"SPD"`
	FOC  int `json:"FOC"`
	ACC  int `json:"ACC"`
	INS  int `json:"INS"`
	WILL int `json:"WILL"`
	MAG  int `json:"MAG"`
	PRA  int `json:"PRA"`
	RES  int `json:"RES"`
}

// Get returns the named stat, or 0 for an unknown name.
func (s StatBlock) Get(name string) int {
	switch name {
	case "STR":
		return s.STR
	case "END":
		return s.END
	case "DEF":
		return s.DEF
	case "SPD":
		return s.SPD
	case "FOC":
		return s.FOC
	case "ACC":
		return s.ACC
	case "INS":
		return s.INS
	case "WILL":
		return s.WILL
	case "MAG":
		return s.MAG
	case "PRA":
		return s.PRA
	case "RES":
		return s.RES
	default:
		return 0
	}
}

// Add increments the named stat by delta. Unknown names are ignored.
func (s *StatBlock) Add(name string, delta int) {
	switch name {
	case "STR":
		s.STR += delta
	case "END":
		s.END += delta
	case "DEF":
		s.DEF += delta
	case "SPD":
		s.SPD += delta
	case "FOC":
		s.FOC += delta
	case "ACC":
		s.ACC += delta
	case "INS":
		s.INS += delta
	case "WILL":
		s.WILL += delta
	case "MAG":
		s.MAG += delta
	case "PRA":
		s.PRA += delta
	case "RES":
		s.RES += delta
	}
}

// TriProfile weights stat growth across the three domains.
// Weights conventionally sum to 1.0 but are not required to.
type TriProfile struct {
	Body   float64 `json:"body"`
	Mind   float64 `json:"mind"`
	Spirit float64 `json:"spirit"`
}
