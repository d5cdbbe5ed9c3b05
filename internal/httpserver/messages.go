package httpserver

import (
	"fmt"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/game"
)

// Describe returns the title and message shown to the player for a rejection.
func Describe(rej game.Rejection, root string) (title, message string) {
	switch rej {
	case game.RejectDuplicateWord:
		return "Word used already", "Be more original!"
	case game.RejectSameAsRoot:
		return "It's the same word", "Do not try to trick!"
	case game.RejectTooShort:
		return "Too short", fmt.Sprintf("Please enter words with more than %d letters", game.MinWordLength-1)
	case game.RejectNotSpellable:
		return "Word not possible", fmt.Sprintf("You can't spell that word from %s", root)
	case game.RejectNotRecognized:
		return "Word not recognised", "You can't just make em up!"
	}
	return "", ""
}
