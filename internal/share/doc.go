// Package share serves a finished rose card on the local network.
//
// Routes:
//
//	GET /           the card as an HTML page
//	GET /note.json  {"name": ..., "style": ..., "note": ...}
//	GET /ws         websocket revealing the note, one {"index","word"}
//	                frame every 40ms, then {"done":true}
//
// When Config.Advertise is set the card is also registered over mDNS as
// "_roseday._tcp" (see package discovery), so "roseday find" on another
// machine can list it.
//
//	srv := share.New(share.Config{Port: 8080, Advertise: true}, share.Card{
//	    Name: "Alex", Style: note.Simple, Note: text,
//	})
//	err := srv.Run(ctx) // until Ctrl+C
package share
