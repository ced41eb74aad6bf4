package state

import (
	tele "gopkg.in/telebot.v4"
)

// fsmHandlers maps an FSM state to the handler invoked when a message
// arrives while the user is in that state.
var fsmHandlers = map[State]func(c tele.Context) error{}

// RegisterHandler binds a handler to an FSM state. Registration happens
// at startup before the bot begins polling, so no locking is needed.
func RegisterHandler(st State, handler func(c tele.Context) error) {
	fsmHandlers[st] = handler
}
