// Package logtail reads back GameTrackr's JSON log file.
//
// Tail keeps the last N lines with a ring buffer, so memory stays
// O(N) regardless of file size. Parse decodes each line into an Entry,
// separating the logger's own keys (time, level, msg, caller) from call-site
// fields. Lines that are not JSON, such as a panic trace, are kept verbatim.
//
//	lines, err := logtail.Tail(path, 50)
//	if err != nil {
//		return err
//	}
//	for _, e := range logtail.Filter(logtail.ParseAll(lines), zapcore.WarnLevel) {
//		fmt.Println(e)
//	}
//
// A missing log file is not an error: Tail returns no lines.
package logtail
