// Package srtworker provides a background subtitle conversion dispatcher.
//
// Requests arrive on an inbound queue and are handled one at a time by a
// single dispatch loop: preloadDict replaces the shared conversion
// dictionary, addFile spawns a conversion task that captures the dictionary
// visible at that moment. Every addFile yields exactly one response,
// correlated by the caller-assigned id:
//
//	srv, _ := srtworker.New()
//	rt := srv.Runtime()
//	_ = rt.Start(ctx)
//	_ = rt.SubmitJSON(ctx, []byte(`{"action":"preloadDict","dict":"https://example.com/s2t.txt"}`))
//	_ = rt.SubmitJSON(ctx, []byte(`{"action":"addFile","id":"a","file":"movie.ass","opts":{"chinese_conv":"S2T"}}`))
//	response, _ := rt.Response(ctx)
//
// An unknown action is a protocol violation that stops the dispatcher.
package srtworker
