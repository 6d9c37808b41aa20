// Package ui renders the game on a terminal and turns the keyboard into
// a Strategy, making a human just one more kind of player.
package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/coupnet/coup/pkg/client"
	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/utils"
	"github.com/coupnet/coup/pkg/wire"
)

// Console prompts a human for every decision and narrates the public
// game log. It implements both client.Strategy and client.Notifier.
type Console struct {
	PlayerName string
}

// NewConsole returns a console player. An empty name is asked for
// interactively when the server wants it.
func NewConsole(name string) *Console { return &Console{PlayerName: name} }

func (c *Console) Name() string {
	if c.PlayerName == "" {
		name, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("Enter your name").Show()
		c.PlayerName = name
	}
	return c.PlayerName
}

// TakeTurn shows the table and walks through action and target choice.
// Only affordable actions are offered, and a treasury at the forced-coup
// line offers nothing but coup.
func (c *Console) TakeTurn(v *client.View) wire.Response {
	c.showTable(v)

	actions := legalActions(v)
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = actionLabel(a)
	}
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Your move").WithOptions(labels).Show()
	action := actions[indexOf(labels, choice)]

	target := wire.NoTarget
	if action.Targeted() {
		target = c.chooseOpponent(v, fmt.Sprintf("Who do you %s?", action))
	}

	switch action {
	case coup.ForeignAid:
		return wire.ForeignAidDecision{}
	case coup.Tax:
		return wire.TaxDecision{}
	case coup.Steal:
		return wire.StealDecision{Target: target}
	case coup.Assassinate:
		return wire.AssassinateDecision{Target: target}
	case coup.Coup:
		return wire.CoupDecision{Target: target}
	case coup.Ambassadate:
		return wire.AmbassadateDecision{}
	default:
		return wire.IncomeDecision{}
	}
}

func (c *Console) CardToKill(v *client.View) wire.Response {
	pterm.Warning.Println("You must give up a card.")
	return wire.CardMessage{Card: c.chooseCard(v.Cards, "Which card do you lose?")}
}

func (c *Console) AmbassadorCards(v *client.View) wire.Response {
	pterm.Info.Printfln("Your hand after drawing: %s", utils.FormatCards(v.Cards))
	first := c.chooseCard(v.Cards, "First card to give back")
	second := c.chooseCard(removeOne(v.Cards, first), "Second card to give back")
	return wire.AmbassadorCardMessage{First: first, Second: second}
}

func (c *Console) Block(v *client.View, m wire.DoYouBlock) wire.Response {
	options := []string{"let it happen"}
	for _, card := range m.Action.BlockedBy() {
		options = append(options, "block with "+card.String())
	}
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText(fmt.Sprintf("%s attempts %s", c.who(v, m.Doer), m.Action)).
		WithOptions(options).Show()
	if choice == "let it happen" {
		return wire.NoBlock{}
	}
	card, _ := coup.CardNamed(strings.TrimPrefix(choice, "block with "))
	return wire.Block{Card: card}
}

func (c *Console) ChallengeAction(v *client.View, m wire.DoYouChallengeAction) wire.Response {
	card, _ := m.Action.RequiredCard()
	text := fmt.Sprintf("%s claims a %s to %s%s. Call the bluff?",
		c.who(v, m.Doer), card, m.Action, c.targetPhrase(v, m.Target))
	if c.confirm(text, false) {
		return wire.Challenge{}
	}
	return wire.Allow{}
}

func (c *Console) ChallengeBlock(v *client.View, m wire.DoYouChallengeBlock) wire.Response {
	text := fmt.Sprintf("%s claims a %s to block the %s. Call the bluff?",
		c.who(v, m.Blocker), m.BlockCard, m.Action)
	if c.confirm(text, false) {
		return wire.Challenge{}
	}
	return wire.Allow{}
}

func (c *Console) ActionChallenged(v *client.View, m wire.YourActionIsChallenged) wire.Response {
	card, _ := m.Action.RequiredCard()
	if !v.HasCard(card) {
		pterm.Warning.Printfln("%s called your bluff on the %s.", c.who(v, m.Challenger), m.Action)
		return wire.Concede{}
	}
	if c.confirm(fmt.Sprintf("%s challenges your %s. Reveal your %s?",
		c.who(v, m.Challenger), m.Action, card), true) {
		return wire.RevealCard{}
	}
	return wire.Concede{}
}

func (c *Console) BlockChallenged(v *client.View, m wire.YourBlockIsChallenged) wire.Response {
	if !v.HasCard(m.BlockCard) {
		pterm.Warning.Printfln("%s called your bluff on the block.", c.who(v, m.Challenger))
		return wire.Concede{}
	}
	if c.confirm(fmt.Sprintf("%s challenges your block. Reveal your %s?",
		c.who(v, m.Challenger), m.BlockCard), true) {
		return wire.RevealCard{}
	}
	return wire.Concede{}
}

// Notify narrates the public game log.
func (c *Console) Notify(v *client.View, cmd wire.Command) {
	switch m := cmd.(type) {
	case wire.DebugMsg:
		pterm.Warning.Printfln("server: %s", m.Text)
	case wire.NewGame:
		pterm.Info.Println("A new game begins.")
	case wire.AddCard:
		pterm.Info.Printfln("You drew a %s. Hand: %s", m.Card, utils.FormatCards(v.Cards))
	case wire.RemoveCard:
		pterm.Info.Printfln("You gave up a %s. Hand: %s", m.Card, utils.FormatCards(v.Cards))
	case wire.ChangeMoney:
		pterm.Info.Printfln("Your purse changes by %+d to %d.", m.Amount, v.Money)
	case wire.MoneyChanged:
		if m.Player != v.Number {
			pterm.Info.Printfln("%s's purse changes by %+d.", c.who(v, m.Player), m.Amount)
		}
	case wire.PlayerLostACard:
		pterm.Info.Printfln("%s lost a %s.", c.who(v, m.Player), m.Card)
	case wire.APlayerIsDead:
		if m.Player == v.Number {
			pterm.Error.Println("You are out of the game.")
		} else {
			pterm.Info.Printfln("%s is out of the game.", c.who(v, m.Player))
		}
	case wire.RulesViolation:
		pterm.Error.Printfln("%s broke the rules and was thrown out.", c.who(v, m.Player))
	case wire.ActionWasTaken:
		pterm.Info.Printfln("%s took %s%s.", c.who(v, m.Doer), m.Action, c.targetPhrase(v, m.Target))
	case wire.ActionWasBlocked:
		pterm.Info.Printfln("%s blocked the %s with a %s claim.",
			c.who(v, m.Blocker), m.Action, m.BlockCard)
	case wire.ActionWasChallenged:
		c.tellChallenge(v, m.Challenger, m.Doer, m.Action.String(), m.Success)
	case wire.BlockWasChallenged:
		c.tellChallenge(v, m.Challenger, m.Blocker, "block", m.Success)
	case wire.Shutdown:
		if v.Alive && len(v.LivingOpponents()) == 0 {
			pterm.Success.Println("You win!")
		} else {
			pterm.Info.Println("The game is over.")
		}
	}
}

func (c *Console) tellChallenge(v *client.View, challenger, accused int, what string, success bool) {
	if success {
		pterm.Info.Printfln("%s challenged %s's %s and was right.",
			c.who(v, challenger), c.who(v, accused), what)
	} else {
		pterm.Info.Printfln("%s challenged %s's %s and was wrong.",
			c.who(v, challenger), c.who(v, accused), what)
	}
}

func (c *Console) showTable(v *client.View) {
	pterm.Println()
	pterm.Info.Printfln("Your hand: %s | %d coins", pterm.LightCyan(utils.FormatCards(v.Cards)), v.Money)
	for _, o := range v.LivingOpponents() {
		pterm.Info.Printfln("  %s: %d coins, lost: %s", c.who(v, o.Number), o.Money, utils.FormatCards(o.Lost))
	}
}

func (c *Console) chooseOpponent(v *client.View, text string) int {
	opps := v.LivingOpponents()
	labels := make([]string, len(opps))
	for i, o := range opps {
		labels[i] = fmt.Sprintf("%s (player %d, %d coins)", o.Name, o.Number, o.Money)
	}
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText(text).WithOptions(labels).Show()
	return opps[indexOf(labels, choice)].Number
}

func (c *Console) chooseCard(cards []coup.Card, text string) coup.Card {
	labels := make([]string, len(cards))
	for i, card := range cards {
		labels[i] = card.String()
	}
	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText(text).WithOptions(labels).Show()
	card, _ := coup.CardNamed(choice)
	return card
}

func (c *Console) confirm(text string, byDefault bool) bool {
	ok, _ := pterm.DefaultInteractiveConfirm.
		WithDefaultText(text).WithDefaultValue(byDefault).Show()
	return ok
}

// who names a seat from this player's point of view.
func (c *Console) who(v *client.View, num int) string {
	if num == v.Number {
		return "you"
	}
	if o := v.Opponent(num); o != nil && o.Name != "" {
		return fmt.Sprintf("%s (player %d)", o.Name, num)
	}
	return fmt.Sprintf("player %d", num)
}

func (c *Console) targetPhrase(v *client.View, target int) string {
	if target == wire.NoTarget {
		return ""
	}
	return " against " + c.who(v, target)
}

func legalActions(v *client.View) []coup.Action {
	if v.Money >= coup.ForcedCoupMoney {
		return []coup.Action{coup.Coup}
	}
	var legal []coup.Action
	for _, a := range coup.Actions() {
		if a.Cost() <= v.Money {
			legal = append(legal, a)
		}
	}
	return legal
}

func actionLabel(a coup.Action) string {
	var notes []string
	if a.Cost() > 0 {
		notes = append(notes, fmt.Sprintf("%d coins", a.Cost()))
	}
	if card, claims := a.RequiredCard(); claims {
		notes = append(notes, "claims "+card.String())
	}
	if len(notes) == 0 {
		return a.String()
	}
	return fmt.Sprintf("%s (%s)", a, strings.Join(notes, ", "))
}

func indexOf(labels []string, choice string) int {
	for i, l := range labels {
		if l == choice {
			return i
		}
	}
	return 0
}

func removeOne(cards []coup.Card, c coup.Card) []coup.Card {
	out := make([]coup.Card, 0, len(cards))
	removed := false
	for _, held := range cards {
		if !removed && held == c {
			removed = true
			continue
		}
		out = append(out, held)
	}
	return out
}
