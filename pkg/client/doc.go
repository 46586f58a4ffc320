// Package client provides a recording HTTP test client.
//
// A Recorder wraps an Issuer — anything that can perform one HTTP exchange,
// typically an in-process http.Handler driven through httptest — and writes
// one HAR entry per exchange to a trace file. Responses pass through to the
// caller unchanged; recording is the only side effect.
//
// # Usage
//
//	rec, err := client.New(client.HandlerIssuer(mux),
//	    client.WithTracePath("testdata/api.har"))
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer rec.Close()
//
//	resp, err := rec.Get("/users?page=2")
//
// The trace file parses as valid HAR only after Close. Performing an
// exchange after Close is a usage error and is rejected without touching
// the file.
//
// A Recorder is scoped to one logical caller, mirroring a test-session
// client; it is not designed for concurrent exchanges on one instance. Use
// one recorder per worker when parallelism is needed.
package client
