// Package tui implements the interactive rose card.
//
// The card is a Bubble Tea program with four screens, driven by a
// session.Controller:
//
//  1. Loading: the rose, rotating messages and a progress bar. Advances
//     on its own after the configured delay.
//  2. Name: asks who the rose is for.
//  3. Choice: five note styles, a "Yes" button and a "No" button that runs
//     away.
//  4. Result: the note, revealed word by word, with particle effects for
//     the highlighted word and a blooming rose.
//
// Timers and generation results are messages that carry the session epoch
// they were created under. Resetting the card bumps the epoch, so late
// ticks and notes from the previous card are dropped by the controller.
//
// All screens share RenderApplicationContainer for the header, centred
// content and help footer.
//
//	err := tui.Run(tui.Options{
//	    Context:   ctx,
//	    Generator: service,
//	    Player:    effects.NewPlayer(true, os.Stderr),
//	})
package tui
