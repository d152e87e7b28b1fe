// Package media handles course images and attachments: cropping, drag-and-drop
// reordering and upload admission.
package media

// Move removes the element at from and inserts it at to, like a drag-and-drop
// drop. Out of range indexes leave the slice unchanged. The input is not
// modified.
func Move[E any](items []E, from, to int) []E {
	out := append([]E(nil), items...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]E{moved}, out[to:]...)...)
	return out
}
