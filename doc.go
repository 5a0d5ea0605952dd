// Package finfo answers questions about filesystem objects and reports the
// answers as one structured JSON document.
//
// A caller selects operations with an oplist such as
// "stat,digest,ls:lstat+readlink". Each operation runs independently for
// every path: a failure is recorded in that operation's slot as an errno and
// message, and the remaining operations and paths are unaffected.
//
// # Operations
//
//   - stat: metadata, following symbolic links
//   - lstat: metadata of the link itself
//   - readlink: the complete target of a symbolic link
//   - ls: one record per directory entry, each running its own operations
//   - digest: hex digest of the content (sha256 unless configured otherwise)
//   - mime: content type sniffed from the leading bytes
//
// Only stat runs when no oplist is given.
//
// # Oplists
//
// Top-level tokens are separated by commas. The ls operation accepts a
// sub-oplist after a colon, with tokens separated by '+', naming the
// operations run on each entry:
//
//	stat,ls:lstat+digest
//
// Sub-oplists cannot nest. The token "recursive" enables ls and makes it
// apply the same oplist to every subdirectory, to any depth:
//
//	stat,recursive       stat every path and all of its descendants
//	ls:stat+recursive    list paths, then stat and descend into their entries
//
// # Basic Usage
//
//	import "github.com/gobeaver/finfo/driver/local"
//
//	table, err := finfo.ParseInfo("stat,ls:lstat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w := jsonw.New(os.Stdout)
//	d := finfo.New(local.New(), finfo.WithChecksum(finfo.ChecksumXXHash))
//	if err := d.Describe(ctx, w, []string{"/etc/hosts", "/tmp"}, table); err != nil {
//	    log.Fatal(err)
//	}
//	if err := w.Flush(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Report Format
//
// The report is an array with one record per path:
//
//	[{"filename":"/tmp","stat":{"result":{"st_dev":...}},"ls":{"error":{"errno":13,"errmsg":"..."}}}]
//
// Listing entries carry d_name, d_ino and d_type before their operation
// slots. Non-directory entries never get an ls slot.
//
// Names are emitted as JSON strings. Bytes that are not valid UTF-8 in a
// filename or d_name are replaced with U+FFFD, so such names cannot be
// recovered byte for byte from the report.
//
// # Watching
//
// Inspectors implementing [CanWatch] support [Describer.Watch], which writes
// a fresh report whenever one of the paths changes.
//
// # Configuration
//
// [GetConfig] reads defaults from the environment (BEAVER_FINFO_INFO,
// BEAVER_FINFO_DIGEST_ALGORITHM, BEAVER_FINFO_READ_BUFFER_SIZE, ...).
package finfo
