package books

import "strings"

const maxQueryLength = 100

const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// BuildLikePattern turns user input into a substring pattern for LIKE ...
// ESCAPE '!'. Wildcards in the input are matched literally. Empty input
// yields "".
func BuildLikePattern(input string) string {
	input = strings.TrimSpace(input)
	if r := []rune(input); len(r) > maxQueryLength {
		input = string(r[:maxQueryLength])
	}
	if input == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(input) + "%"
}
