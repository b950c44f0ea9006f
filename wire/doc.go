// Package wire provides the fixed-width byte codec underneath the tag
// model.
//
// Reader is a bounds-checked cursor over an in-memory buffer; every read
// past the end fails with a truncated_buffer error that records the offset.
// Writer appends to a growing buffer. Both are configured with a byte order
// (big-endian unless told otherwise) and a text mode for names and string
// payloads.
//
// Custom tag types use these to implement their payload codecs:
//
//	func (t *Vec3) ReadPayload(r *wire.Reader, d *tag.Decoder) error {
//		for i := range t.V {
//			v, err := r.Float32()
//			if err != nil {
//				return err
//			}
//			t.V[i] = v
//		}
//		return nil
//	}
//
// GetWriter and PutWriter manage a pool of writers for callers that encode
// into scratch space and copy the result out.
package wire
