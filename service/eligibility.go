package service

import "sort"

// DefaultEligibleGames is the promotion's list of eligible games. Names must match the
// ledger byte for byte; the authoritative copy lives on the promotion page.
var DefaultEligibleGames = []string{
	"Fortune Tiger", "Fortune Ox", "Fortune Mouse", "Fortune Rabbit",
	"Tigre Sortudo", "Tigre Sortudo 1000", "Macaco Sortudo",
	"Ratinho Sortudo", "Touro Sortudo", "Cachorro Sortudo",
	"Wild Bounty Showdown", "Dragon Hatch", "Dragon Hatch 2",
	"Midas Fortune", "The Great Icescape", "Wild Bandito",
	"Lucky Neko", "Piggy Gold", "Dragon Tiger Luck", "Lucky Piggy",
	"Caishen Wins", "Bikini Paradise", "Double Fortune",
	"Ways Of The Qilin", "Ganesha Gold", "Ganesha Fortune",
	"Mahjong Ways", "Mahjong Ways 2", "Speed Winner",
	"Treasures Of Aztec", "Legend Of Perseus", "Shaolin Soccer",
	"Asgardian Rising", "Diner Delights", "Cash Mania",
	"Pinata Wins", "Wild Ape", "Futebol Fever", "Ultimate Striker",
	"Jungle Delight", "Zombie Outbreak", "Mafia Mayhem",
	"Yakuza Honor", "Mystic Potion", "Wings Of Iguazu",
	"Three Crazy Piggies", "Rio Fantasia", "Chocolate Deluxe",
	"Graffiti Rush", "Dreams Of Macau", "Sweet Bonanza",
	"Sweet Bonanza Xmas", "Gates Of Olympus",
	"Gates Of Olympus 1000", "Gates Of Olympus Xmas 1000",
	"Big Bass Bonanza", "Big Bass Splash", "Big Bass Christmas Bash",
}

// EligibilityList is an immutable set of game names
type EligibilityList struct {
	games map[string]struct{}
}

// NewEligibilityList builds a list from names. Names are stored verbatim.
func NewEligibilityList(names []string) *EligibilityList {
	games := make(map[string]struct{}, len(names))
	for _, name := range names {
		games[name] = struct{}{}
	}
	return &EligibilityList{games: games}
}

// DefaultEligibilityList returns the list built from DefaultEligibleGames
func DefaultEligibilityList() *EligibilityList {
	return NewEligibilityList(DefaultEligibleGames)
}

// Contains is an exact, case-sensitive match. "fortune tiger" and "Fortune Tiger " are not eligible.
func (l *EligibilityList) Contains(gameName string) bool {
	_, ok := l.games[gameName]
	return ok
}

// Len returns the number of eligible games
func (l *EligibilityList) Len() int {
	return len(l.games)
}

// Names returns the eligible games sorted alphabetically
func (l *EligibilityList) Names() []string {
	names := make([]string, 0, len(l.games))
	for name := range l.games {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
