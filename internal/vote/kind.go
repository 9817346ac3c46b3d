package vote

import "fmt"

// Kind names the entity type a vote targets.
type Kind string

const (
	KindQuestion Kind = "question"
	KindAnswer   Kind = "answer"
	KindReply    Kind = "reply"
	KindComment  Kind = "comment"
)

// Kinds lists every votable entity type.
var Kinds = []Kind{KindQuestion, KindAnswer, KindReply, KindComment}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindQuestion, KindAnswer, KindReply, KindComment:
		return true
	}
	return false
}

// Target identifies one votable entity.
type Target struct {
	Kind Kind
	ID   string
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%s", t.Kind, t.ID)
}
