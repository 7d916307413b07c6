package chatui

import "ai-querychat-be/pkg/chatclient"

// turnDoneMsg is sent when the network stages of a turn have finished.
type turnDoneMsg struct {
	turn *chatclient.Turn
}

// actionDoneMsg reports the outcome of a background call with a toast.
type actionDoneMsg struct {
	ok  string
	err error
}
