// Package cloudwriter abstracts streaming uploads of generated data
// files to object storage.
package cloudwriter

// CloudWriter buffers writes for one object. The object becomes visible
// on Close.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

// CloudWriterFactory creates writers bound to one storage backend.
type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
