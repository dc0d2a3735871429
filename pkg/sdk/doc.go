// Package qbet embeds the freelancer ranking pipeline in a Go program
// without running the HTTP server.
//
// The caller supplies the candidate list; the client extracts the intent
// from the query, filters the list on it and returns the survivors ordered
// by relevance.
//
//	client, _ := qbet.New(qbet.WithLogger(slog.Default()))
//	ranked, _ := client.RankFreelancers(ctx, "dev react à paris dispo", freelancers)
//
// An optional Recognizer adds named-entity location detection on top of the
// built-in correction and landmark tables:
//
//	client, _ := qbet.New(qbet.WithRecognizer(myNER))
package qbet
