package wire

import "github.com/coupnet/coup/pkg/coup"

// Setup and lifecycle commands.

// DebugMsg carries a human-readable diagnostic. It never changes state and
// expects no response.
type DebugMsg struct{ Text string }

func (DebugMsg) MsgName() string    { return "debug_msg" }
func (m DebugMsg) fields() []string { return []string{Clean(m.Text)} }
func (DebugMsg) isCommand()         {}

// Shutdown tells the client the game is over and the connection is closing.
type Shutdown struct{}

func (Shutdown) MsgName() string  { return "shutdown" }
func (Shutdown) fields() []string { return nil }
func (Shutdown) isCommand()       {}

// AskName prompts for a NameResponse.
type AskName struct{}

func (AskName) MsgName() string  { return "ask_name" }
func (AskName) fields() []string { return nil }
func (AskName) isCommand()       {}

// AddOpponent introduces another seat at the table.
type AddOpponent struct {
	Number int
	Name   string
}

func (AddOpponent) MsgName() string { return "add_opponent" }
func (m AddOpponent) fields() []string {
	return []string{formatInt(m.Number), Clean(m.Name)}
}
func (AddOpponent) isCommand() {}

// SetPlayerNumber tells the client its own seat number.
type SetPlayerNumber struct{ Number int }

func (SetPlayerNumber) MsgName() string    { return "set_player_number" }
func (m SetPlayerNumber) fields() []string { return []string{formatInt(m.Number)} }
func (SetPlayerNumber) isCommand()         {}

// NewGame marks the start of play.
type NewGame struct{}

func (NewGame) MsgName() string  { return "new_game" }
func (NewGame) fields() []string { return nil }
func (NewGame) isCommand()       {}

// Private state commands, sent only to the affected player.

// AddCard puts a card into the recipient's hand.
type AddCard struct{ Card coup.Card }

func (AddCard) MsgName() string    { return "add_card" }
func (m AddCard) fields() []string { return []string{m.Card.String()} }
func (AddCard) isCommand()         {}

// RemoveCard takes a card out of the recipient's hand, whether it was
// revealed, returned to the deck, or handed back after an exchange.
type RemoveCard struct{ Card coup.Card }

func (RemoveCard) MsgName() string    { return "remove_card" }
func (m RemoveCard) fields() []string { return []string{m.Card.String()} }
func (RemoveCard) isCommand()         {}

// ChangeMoney adjusts the recipient's own balance by Amount.
type ChangeMoney struct{ Amount int }

func (ChangeMoney) MsgName() string    { return "change_money" }
func (m ChangeMoney) fields() []string { return []string{formatInt(m.Amount)} }
func (ChangeMoney) isCommand()         {}

// Public state broadcasts.

// MoneyChanged is the public record of a coin delta on any seat. The
// affected player additionally receives the private ChangeMoney.
type MoneyChanged struct {
	Player int
	Amount int
}

func (MoneyChanged) MsgName() string { return "money_changed" }
func (m MoneyChanged) fields() []string {
	return []string{formatInt(m.Player), formatInt(m.Amount)}
}
func (MoneyChanged) isCommand() {}

// PlayerLostACard announces a permanent, face-up card loss.
type PlayerLostACard struct {
	Player int
	Card   coup.Card
}

func (PlayerLostACard) MsgName() string { return "player_lost_a_card" }
func (m PlayerLostACard) fields() []string {
	return []string{formatInt(m.Player), m.Card.String()}
}
func (PlayerLostACard) isCommand() {}

// APlayerIsDead announces that a seat is out of the game.
type APlayerIsDead struct{ Player int }

func (APlayerIsDead) MsgName() string    { return "a_player_is_dead" }
func (m APlayerIsDead) fields() []string { return []string{formatInt(m.Player)} }
func (APlayerIsDead) isCommand()         {}

// RulesViolation announces that a seat was removed for breaking protocol.
type RulesViolation struct{ Player int }

func (RulesViolation) MsgName() string    { return "rules_violation" }
func (m RulesViolation) fields() []string { return []string{formatInt(m.Player)} }
func (RulesViolation) isCommand()         {}

// Prompts. Each expects exactly one response of the matching kind.

// ChooseCardToKill asks the recipient to pick one of its own cards to lose.
type ChooseCardToKill struct{}

func (ChooseCardToKill) MsgName() string  { return "choose_card_to_kill" }
func (ChooseCardToKill) fields() []string { return nil }
func (ChooseCardToKill) isCommand()       {}

// ChooseAmbassadorCards asks which two cards go back to the deck after an
// ambassador exchange.
type ChooseAmbassadorCards struct{}

func (ChooseAmbassadorCards) MsgName() string  { return "choose_ambassador_cards" }
func (ChooseAmbassadorCards) fields() []string { return nil }
func (ChooseAmbassadorCards) isCommand()       {}

// TakeTurn asks the recipient for an action decision.
type TakeTurn struct{}

func (TakeTurn) MsgName() string  { return "take_turn" }
func (TakeTurn) fields() []string { return nil }
func (TakeTurn) isCommand()       {}

// YourActionIsChallenged asks the actor to reveal or concede.
type YourActionIsChallenged struct {
	Action     coup.Action
	Target     int
	Challenger int
}

func (YourActionIsChallenged) MsgName() string { return "your_action_is_challenged" }
func (m YourActionIsChallenged) fields() []string {
	return []string{m.Action.String(), formatInt(m.Target), formatInt(m.Challenger)}
}
func (YourActionIsChallenged) isCommand() {}

// YourBlockIsChallenged asks the blocker to reveal or concede. It carries
// no target field: every blockable action either targets the blocker
// itself or nobody.
type YourBlockIsChallenged struct {
	Action     coup.Action
	Doer       int
	BlockCard  coup.Card
	Challenger int
}

func (YourBlockIsChallenged) MsgName() string { return "your_block_is_challenged" }
func (m YourBlockIsChallenged) fields() []string {
	return []string{m.Action.String(), formatInt(m.Doer), m.BlockCard.String(), formatInt(m.Challenger)}
}
func (YourBlockIsChallenged) isCommand() {}

// DoYouBlock asks whether the recipient blocks the named action.
type DoYouBlock struct {
	Action coup.Action
	Doer   int
}

func (DoYouBlock) MsgName() string { return "do_you_block" }
func (m DoYouBlock) fields() []string {
	return []string{m.Action.String(), formatInt(m.Doer)}
}
func (DoYouBlock) isCommand() {}

// DoYouChallengeAction asks whether the recipient challenges the action.
type DoYouChallengeAction struct {
	Action coup.Action
	Doer   int
	Target int
}

func (DoYouChallengeAction) MsgName() string { return "do_you_challenge_action" }
func (m DoYouChallengeAction) fields() []string {
	return []string{m.Action.String(), formatInt(m.Doer), formatInt(m.Target)}
}
func (DoYouChallengeAction) isCommand() {}

// DoYouChallengeBlock asks whether the recipient challenges a declared block.
type DoYouChallengeBlock struct {
	Action    coup.Action
	Doer      int
	Target    int
	BlockCard coup.Card
	Blocker   int
}

func (DoYouChallengeBlock) MsgName() string { return "do_you_challenge_block" }
func (m DoYouChallengeBlock) fields() []string {
	return []string{m.Action.String(), formatInt(m.Doer), formatInt(m.Target), m.BlockCard.String(), formatInt(m.Blocker)}
}
func (DoYouChallengeBlock) isCommand() {}

// Public log broadcasts. Target is -1 for untargeted actions.

// ActionWasTaken records a completed action.
type ActionWasTaken struct {
	Action coup.Action
	Doer   int
	Target int
}

func (ActionWasTaken) MsgName() string { return "log_action_was_taken" }
func (m ActionWasTaken) fields() []string {
	return []string{m.Action.String(), formatInt(m.Doer), formatInt(m.Target)}
}
func (ActionWasTaken) isCommand() {}

// ActionWasBlocked records an action stopped by a standing block.
type ActionWasBlocked struct {
	Action    coup.Action
	Doer      int
	Target    int
	BlockCard coup.Card
	Blocker   int
}

func (ActionWasBlocked) MsgName() string { return "log_action_was_blocked" }
func (m ActionWasBlocked) fields() []string {
	return []string{m.Action.String(), formatInt(m.Doer), formatInt(m.Target), m.BlockCard.String(), formatInt(m.Blocker)}
}
func (ActionWasBlocked) isCommand() {}

// ActionWasChallenged records a challenge outcome. Success means the
// challenger was right and the action died.
type ActionWasChallenged struct {
	Action     coup.Action
	Doer       int
	Target     int
	Challenger int
	Success    bool
}

func (ActionWasChallenged) MsgName() string { return "log_action_was_challenged" }
func (m ActionWasChallenged) fields() []string {
	return []string{m.Action.String(), formatInt(m.Doer), formatInt(m.Target), formatInt(m.Challenger), formatBool(m.Success)}
}
func (ActionWasChallenged) isCommand() {}

// BlockWasChallenged records a block-challenge outcome. Success means the
// challenger was right and the block was voided.
type BlockWasChallenged struct {
	Action     coup.Action
	Doer       int
	Target     int
	BlockCard  coup.Card
	Blocker    int
	Challenger int
	Success    bool
}

func (BlockWasChallenged) MsgName() string { return "log_block_was_challenged" }
func (m BlockWasChallenged) fields() []string {
	return []string{m.Action.String(), formatInt(m.Doer), formatInt(m.Target), m.BlockCard.String(), formatInt(m.Blocker), formatInt(m.Challenger), formatBool(m.Success)}
}
func (BlockWasChallenged) isCommand() {}
