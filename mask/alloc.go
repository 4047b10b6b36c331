package mask

// AllocImage returns a zeroed buffer of size bytes whose capacity is rounded
// up to a multiple of four.
func AllocImage(size int) []byte {
	if size <= 0 {
		return nil
	}
	capacity := (size + 3) &^ 3
	return make([]byte, size, capacity)
}

// FreeImage releases a buffer obtained from AllocImage and clears the reference.
func FreeImage(img *[]byte) {
	if img != nil {
		*img = nil
	}
}
