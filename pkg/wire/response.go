package wire

import "github.com/coupnet/coup/pkg/coup"

// NoTarget is the target field value for untargeted actions.
const NoTarget = -1

// NameResponse answers AskName.
type NameResponse struct{ Name string }

func (NameResponse) MsgName() string    { return "name_response" }
func (m NameResponse) fields() []string { return []string{Clean(m.Name)} }
func (NameResponse) isResponse()        {}

// ActionDecision is the subset of responses that answer TakeTurn.
type ActionDecision interface {
	Response
	// Decision returns the chosen action and its target seat, or NoTarget
	// when the action takes none.
	Decision() (coup.Action, int)
}

type IncomeDecision struct{}

func (IncomeDecision) MsgName() string              { return "income_decision" }
func (IncomeDecision) fields() []string             { return nil }
func (IncomeDecision) isResponse()                  {}
func (IncomeDecision) Decision() (coup.Action, int) { return coup.Income, NoTarget }

type ForeignAidDecision struct{}

func (ForeignAidDecision) MsgName() string              { return "foreign_aid_decision" }
func (ForeignAidDecision) fields() []string             { return nil }
func (ForeignAidDecision) isResponse()                  {}
func (ForeignAidDecision) Decision() (coup.Action, int) { return coup.ForeignAid, NoTarget }

type TaxDecision struct{}

func (TaxDecision) MsgName() string              { return "tax_decision" }
func (TaxDecision) fields() []string             { return nil }
func (TaxDecision) isResponse()                  {}
func (TaxDecision) Decision() (coup.Action, int) { return coup.Tax, NoTarget }

type AmbassadateDecision struct{}

func (AmbassadateDecision) MsgName() string              { return "ambassadate_decision" }
func (AmbassadateDecision) fields() []string             { return nil }
func (AmbassadateDecision) isResponse()                  {}
func (AmbassadateDecision) Decision() (coup.Action, int) { return coup.Ambassadate, NoTarget }

type StealDecision struct{ Target int }

func (StealDecision) MsgName() string                { return "steal_decision" }
func (m StealDecision) fields() []string             { return []string{formatInt(m.Target)} }
func (StealDecision) isResponse()                    {}
func (m StealDecision) Decision() (coup.Action, int) { return coup.Steal, m.Target }

type AssassinateDecision struct{ Target int }

func (AssassinateDecision) MsgName() string                { return "assassinate_decision" }
func (m AssassinateDecision) fields() []string             { return []string{formatInt(m.Target)} }
func (AssassinateDecision) isResponse()                    {}
func (m AssassinateDecision) Decision() (coup.Action, int) { return coup.Assassinate, m.Target }

type CoupDecision struct{ Target int }

func (CoupDecision) MsgName() string                { return "coup_decision" }
func (m CoupDecision) fields() []string             { return []string{formatInt(m.Target)} }
func (CoupDecision) isResponse()                    {}
func (m CoupDecision) Decision() (coup.Action, int) { return coup.Coup, m.Target }

// RevealDecision is the subset of responses that answer
// YourActionIsChallenged and YourBlockIsChallenged.
type RevealDecision interface {
	Response
	isRevealDecision()
}

// RevealCard answers a challenge prompt by showing the claimed card. The
// prompt only ever arrives when a single card can settle it, so the card
// itself is not named.
type RevealCard struct{}

func (RevealCard) MsgName() string    { return "reveal_card" }
func (RevealCard) fields() []string   { return nil }
func (RevealCard) isResponse()        {}
func (RevealCard) isRevealDecision()  {}

// Concede answers a challenge prompt by admitting the bluff.
type Concede struct{}

func (Concede) MsgName() string   { return "concede" }
func (Concede) fields() []string  { return nil }
func (Concede) isResponse()       {}
func (Concede) isRevealDecision() {}

// ChallengeDecision is the subset of responses that answer
// DoYouChallengeAction and DoYouChallengeBlock.
type ChallengeDecision interface {
	Response
	isChallengeDecision()
}

// Challenge answers a challenge poll in the affirmative.
type Challenge struct{}

func (Challenge) MsgName() string      { return "challenge" }
func (Challenge) fields() []string     { return nil }
func (Challenge) isResponse()          {}
func (Challenge) isChallengeDecision() {}

// Allow answers a challenge poll in the negative.
type Allow struct{}

func (Allow) MsgName() string      { return "allow" }
func (Allow) fields() []string     { return nil }
func (Allow) isResponse()          {}
func (Allow) isChallengeDecision() {}

// BlockDecision is the subset of responses that answer DoYouBlock.
type BlockDecision interface {
	Response
	isBlockDecision()
}

// Block answers DoYouBlock by claiming the named card.
type Block struct{ Card coup.Card }

func (Block) MsgName() string    { return "block" }
func (m Block) fields() []string { return []string{m.Card.String()} }
func (Block) isResponse()        {}
func (Block) isBlockDecision()   {}

// NoBlock answers DoYouBlock by letting the action through.
type NoBlock struct{}

func (NoBlock) MsgName() string  { return "no_block" }
func (NoBlock) fields() []string { return nil }
func (NoBlock) isResponse()      {}
func (NoBlock) isBlockDecision() {}

// CardMessage answers ChooseCardToKill.
type CardMessage struct{ Card coup.Card }

func (CardMessage) MsgName() string    { return "card_message" }
func (m CardMessage) fields() []string { return []string{m.Card.String()} }
func (CardMessage) isResponse()        {}

// AmbassadorCardMessage answers ChooseAmbassadorCards with the two cards
// going back to the deck.
type AmbassadorCardMessage struct {
	First  coup.Card
	Second coup.Card
}

func (AmbassadorCardMessage) MsgName() string { return "ambassador_card_message" }
func (m AmbassadorCardMessage) fields() []string {
	return []string{m.First.String(), m.Second.String()}
}
func (AmbassadorCardMessage) isResponse() {}

// Raw is an arbitrary record. It encodes whatever it carries and is never
// produced by decoding, which makes it useful for sending unknown names or
// broken field lists on purpose.
type Raw struct {
	Name   string
	Fields []string
}

func (m Raw) MsgName() string  { return m.Name }
func (m Raw) fields() []string { return m.Fields }
func (Raw) isResponse()        {}
