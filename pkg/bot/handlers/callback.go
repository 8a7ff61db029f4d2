package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

const ReviewCallbackPrefix = "r:"

// BuildReviewCallback encodes a review outcome button: "r:<wordID>:1"
// for a correct recall, "r:<wordID>:0" for a lapse.
func BuildReviewCallback(wordID uint, correct bool) string {
	flag := "0"
	if correct {
		flag = "1"
	}
	return fmt.Sprintf("%s%d:%s", ReviewCallbackPrefix, wordID, flag)
}

// ParseReviewCallback decodes callback data. Only an explicit "0" flag
// counts as incorrect; a missing or unrecognized flag is treated as a
// correct recall so older button payloads keep working.
func ParseReviewCallback(data string) (wordID uint, correct bool, ok bool) {
	rest, found := strings.CutPrefix(data, ReviewCallbackPrefix)
	if !found {
		return 0, false, false
	}
	parts := strings.SplitN(rest, ":", 2)
	id, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil || id == 0 {
		return 0, false, false
	}
	correct = true
	if len(parts) == 2 && parts[1] == "0" {
		correct = false
	}
	return uint(id), correct, true
}
