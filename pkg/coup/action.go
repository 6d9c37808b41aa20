package coup

// Action is a move a player can take on their turn.
type Action int

const (
	Income Action = iota
	ForeignAid
	Tax
	Steal
	Assassinate
	Coup
	Ambassadate
)

// ForcedCoupMoney is the coin count at which a player must Coup; holding
// this much money makes every other action illegal.
const ForcedCoupMoney = 10

// actionAttrs holds the static rule attributes of one action.
type actionAttrs struct {
	name      string
	targeted  bool
	cost      int
	requires  Card // meaningful only when hasCard is set
	hasCard   bool
	blockedBy []Card
}

var actionTable = [...]actionAttrs{
	Income:      {name: "income"},
	ForeignAid:  {name: "foreign_aid", blockedBy: []Card{Duke}},
	Tax:         {name: "tax", requires: Duke, hasCard: true},
	Steal:       {name: "steal", targeted: true, requires: Captain, hasCard: true, blockedBy: []Card{Captain, Ambassador}},
	Assassinate: {name: "assassinate", targeted: true, cost: 3, requires: Assassin, hasCard: true, blockedBy: []Card{Contessa}},
	Coup:        {name: "coup", targeted: true, cost: 7},
	Ambassadate: {name: "ambassadate", requires: Ambassador, hasCard: true},
}

// String returns the action's wire name.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionTable) {
		return "unknown"
	}
	return actionTable[a].name
}

// Targeted reports whether the action is aimed at a specific opponent.
func (a Action) Targeted() bool { return actionTable[a].targeted }

// Cost returns the number of coins the action costs.
func (a Action) Cost() int { return actionTable[a].cost }

// RequiredCard returns the card that justifies the action, if any.
// Actions without a required card cannot be challenged.
func (a Action) RequiredCard() (Card, bool) {
	return actionTable[a].requires, actionTable[a].hasCard
}

// BlockedBy returns the card kinds that may block the action.
func (a Action) BlockedBy() []Card {
	bb := actionTable[a].blockedBy
	out := make([]Card, len(bb))
	copy(out, bb)
	return out
}

// Blockable reports whether any card can block the action.
func (a Action) Blockable() bool { return len(actionTable[a].blockedBy) > 0 }

// CanBeBlockedBy reports whether c is a legal block against the action.
func (a Action) CanBeBlockedBy(c Card) bool {
	for _, b := range actionTable[a].blockedBy {
		if b == c {
			return true
		}
	}
	return false
}

// ActionNamed looks up an action by its wire name.
func ActionNamed(name string) (Action, bool) {
	for i := range actionTable {
		if actionTable[i].name == name {
			return Action(i), true
		}
	}
	return 0, false
}

// Actions returns every action in declaration order.
func Actions() []Action {
	return []Action{Income, ForeignAid, Tax, Steal, Assassinate, Coup, Ambassadate}
}
