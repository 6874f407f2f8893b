package discord

import (
	"regexp"
	"strconv"
	"strings"
)

// chatRollPattern matches the relayed in-game roll line, e.g.
// "Thal rolls 87 (1-100)". Participant names never contain spaces.
var chatRollPattern = regexp.MustCompile(`^(\S+) rolls (\d+) \((\d+)-(\d+)\)$`)

// ChatRoll is one parsed roll notification
type ChatRoll struct {
	Participant string
	Value       int
	Min         int
	Max         int
}

// ParseChatRoll extracts a roll notification from a chat line. The second
// return is false when the line is not a roll line at all; range policy is
// the session service's decision, not the parser's.
func ParseChatRoll(line string) (*ChatRoll, bool) {
	matches := chatRollPattern.FindStringSubmatch(strings.TrimSpace(line))
	if matches == nil {
		return nil, false
	}

	value, err := strconv.Atoi(matches[2])
	if err != nil {
		return nil, false
	}
	min, err := strconv.Atoi(matches[3])
	if err != nil {
		return nil, false
	}
	max, err := strconv.Atoi(matches[4])
	if err != nil {
		return nil, false
	}

	return &ChatRoll{
		Participant: matches[1],
		Value:       value,
		Min:         min,
		Max:         max,
	}, true
}
