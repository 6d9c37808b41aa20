package wire

import "github.com/coupnet/coup/pkg/coup"

// fieldReader consumes record fields left to right. The first missing or
// unparsable field sticks: later reads return zero values and the record
// is rejected as a whole. Fields beyond the last read are ignored.
type fieldReader struct {
	fields []string
	pos    int
	bad    bool
}

func (r *fieldReader) next() string {
	if r.bad || r.pos >= len(r.fields) {
		r.bad = true
		return ""
	}
	s := r.fields[r.pos]
	r.pos++
	return s
}

func (r *fieldReader) readString() string { return r.next() }

func (r *fieldReader) readInt() int {
	n, ok := parseInt(r.next())
	if !ok {
		r.bad = true
	}
	return n
}

func (r *fieldReader) readBool() bool {
	b, ok := parseBool(r.next())
	if !ok {
		r.bad = true
	}
	return b
}

func (r *fieldReader) readCard() coup.Card {
	c, ok := coup.CardNamed(r.next())
	if !ok {
		r.bad = true
	}
	return c
}

func (r *fieldReader) readAction() coup.Action {
	a, ok := coup.ActionNamed(r.next())
	if !ok {
		r.bad = true
	}
	return a
}

var commandDecoders = map[string]func(*fieldReader) Command{
	"debug_msg":          func(r *fieldReader) Command { return DebugMsg{Text: r.readString()} },
	"shutdown":           func(*fieldReader) Command { return Shutdown{} },
	"ask_name":           func(*fieldReader) Command { return AskName{} },
	"add_opponent":       func(r *fieldReader) Command { return AddOpponent{Number: r.readInt(), Name: r.readString()} },
	"set_player_number":  func(r *fieldReader) Command { return SetPlayerNumber{Number: r.readInt()} },
	"new_game":           func(*fieldReader) Command { return NewGame{} },
	"add_card":           func(r *fieldReader) Command { return AddCard{Card: r.readCard()} },
	"remove_card":        func(r *fieldReader) Command { return RemoveCard{Card: r.readCard()} },
	"change_money":       func(r *fieldReader) Command { return ChangeMoney{Amount: r.readInt()} },
	"money_changed":      func(r *fieldReader) Command { return MoneyChanged{Player: r.readInt(), Amount: r.readInt()} },
	"player_lost_a_card": func(r *fieldReader) Command { return PlayerLostACard{Player: r.readInt(), Card: r.readCard()} },
	"a_player_is_dead":   func(r *fieldReader) Command { return APlayerIsDead{Player: r.readInt()} },
	"rules_violation":    func(r *fieldReader) Command { return RulesViolation{Player: r.readInt()} },

	"choose_card_to_kill":     func(*fieldReader) Command { return ChooseCardToKill{} },
	"choose_ambassador_cards": func(*fieldReader) Command { return ChooseAmbassadorCards{} },
	"take_turn":               func(*fieldReader) Command { return TakeTurn{} },
	"your_action_is_challenged": func(r *fieldReader) Command {
		return YourActionIsChallenged{Action: r.readAction(), Target: r.readInt(), Challenger: r.readInt()}
	},
	"your_block_is_challenged": func(r *fieldReader) Command {
		return YourBlockIsChallenged{Action: r.readAction(), Doer: r.readInt(), BlockCard: r.readCard(), Challenger: r.readInt()}
	},
	"do_you_block": func(r *fieldReader) Command {
		return DoYouBlock{Action: r.readAction(), Doer: r.readInt()}
	},
	"do_you_challenge_action": func(r *fieldReader) Command {
		return DoYouChallengeAction{Action: r.readAction(), Doer: r.readInt(), Target: r.readInt()}
	},
	"do_you_challenge_block": func(r *fieldReader) Command {
		return DoYouChallengeBlock{Action: r.readAction(), Doer: r.readInt(), Target: r.readInt(), BlockCard: r.readCard(), Blocker: r.readInt()}
	},

	"log_action_was_taken": func(r *fieldReader) Command {
		return ActionWasTaken{Action: r.readAction(), Doer: r.readInt(), Target: r.readInt()}
	},
	"log_action_was_blocked": func(r *fieldReader) Command {
		return ActionWasBlocked{Action: r.readAction(), Doer: r.readInt(), Target: r.readInt(), BlockCard: r.readCard(), Blocker: r.readInt()}
	},
	"log_action_was_challenged": func(r *fieldReader) Command {
		return ActionWasChallenged{Action: r.readAction(), Doer: r.readInt(), Target: r.readInt(), Challenger: r.readInt(), Success: r.readBool()}
	},
	"log_block_was_challenged": func(r *fieldReader) Command {
		return BlockWasChallenged{Action: r.readAction(), Doer: r.readInt(), Target: r.readInt(), BlockCard: r.readCard(), Blocker: r.readInt(), Challenger: r.readInt(), Success: r.readBool()}
	},
}

var responseDecoders = map[string]func(*fieldReader) Response{
	"name_response":        func(r *fieldReader) Response { return NameResponse{Name: r.readString()} },
	"income_decision":      func(*fieldReader) Response { return IncomeDecision{} },
	"foreign_aid_decision": func(*fieldReader) Response { return ForeignAidDecision{} },
	"tax_decision":         func(*fieldReader) Response { return TaxDecision{} },
	"ambassadate_decision": func(*fieldReader) Response { return AmbassadateDecision{} },
	"steal_decision":       func(r *fieldReader) Response { return StealDecision{Target: r.readInt()} },
	"assassinate_decision": func(r *fieldReader) Response { return AssassinateDecision{Target: r.readInt()} },
	"coup_decision":        func(r *fieldReader) Response { return CoupDecision{Target: r.readInt()} },
	"reveal_card":          func(*fieldReader) Response { return RevealCard{} },
	"concede":              func(*fieldReader) Response { return Concede{} },
	"challenge":            func(*fieldReader) Response { return Challenge{} },
	"allow":                func(*fieldReader) Response { return Allow{} },
	"block":                func(r *fieldReader) Response { return Block{Card: r.readCard()} },
	"no_block":             func(*fieldReader) Response { return NoBlock{} },
	"card_message":         func(r *fieldReader) Response { return CardMessage{Card: r.readCard()} },
	"ambassador_card_message": func(r *fieldReader) Response {
		return AmbassadorCardMessage{First: r.readCard(), Second: r.readCard()}
	},
}

// DecodeCommand parses one record into a typed command. It reports false
// when the name is unknown or a required field is missing or unparsable.
func DecodeCommand(record string) (Command, bool) {
	name, fields := split(record)
	dec, ok := commandDecoders[name]
	if !ok {
		return nil, false
	}
	r := &fieldReader{fields: fields}
	cmd := dec(r)
	if r.bad {
		return nil, false
	}
	return cmd, true
}

// DecodeResponse parses one record into a typed response. It reports false
// when the name is unknown or a required field is missing or unparsable.
func DecodeResponse(record string) (Response, bool) {
	name, fields := split(record)
	dec, ok := responseDecoders[name]
	if !ok {
		return nil, false
	}
	r := &fieldReader{fields: fields}
	resp := dec(r)
	if r.bad {
		return nil, false
	}
	return resp, true
}
