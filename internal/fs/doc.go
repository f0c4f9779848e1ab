// Package fs abstracts the filesystem calls the local blob store makes, so
// tests can inject write, sync and rename failures.
//
// Production code uses [Default], which forwards to the os package:
//
//	f, err := fs.Default.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
//
// Tests wrap it in a [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailOnSync: true})
//
// Operations take no context.Context; local syscalls cannot be interrupted.
package fs
