package lsdoc

// ============================================================
// Translated String Codecs
// ============================================================
//
// TranslatedString and TranslatedFSString carry their own packed layouts
// inside the attribute payload. All counted strings here are an i32 byte
// length followed by the bytes and one NUL terminator; the length counts the
// terminator, and an empty string is length 0 with no bytes at all.

func decodeCountedString(r *byteReader) (string, error) {
	n, err := r.i32()
	if err != nil {
		return "", err
	}
	if n <= 0 {
		return "", nil
	}
	b, err := r.take(int(n) - 1)
	if err != nil {
		return "", err
	}
	// Terminator.
	if _, err := r.u8(); err != nil {
		return "", err
	}
	return decodeRawString(b), nil
}

func encodeCountedString(w *byteWriter, s string) {
	if s == "" {
		w.i32(0)
		return
	}
	w.i32(int32(len(s)) + 1)
	w.bytes([]byte(s))
	w.u8(0)
}

// decodeTranslatedString reads version, then the handle. Newer writers append
// an inline value after the handle; older payloads end there, so the value
// part is read only when bytes remain.
func decodeTranslatedString(r *byteReader) (TranslatedString, error) {
	var ts TranslatedString
	ver, err := r.u16()
	if err != nil {
		return ts, err
	}
	ts.Version = ver
	ts.Handle, err = decodeCountedString(r)
	if err != nil {
		return ts, err
	}
	if r.remaining() > 0 {
		ts.Value, err = decodeCountedString(r)
		if err != nil {
			return ts, err
		}
	}
	return ts, nil
}

func encodeTranslatedString(w *byteWriter, ts *TranslatedString) {
	w.u16(ts.Version)
	encodeCountedString(w, ts.Handle)
	if ts.Value != "" {
		encodeCountedString(w, ts.Value)
	}
}

// decodeTranslatedFSString reads version, value, handle, then the argument
// list. Each argument is a key, a nested format string, and a value.
func decodeTranslatedFSString(r *byteReader) (TranslatedFSString, error) {
	var fs TranslatedFSString
	ver, err := r.u16()
	if err != nil {
		return fs, err
	}
	fs.Version = ver
	if fs.Value, err = decodeCountedString(r); err != nil {
		return fs, err
	}
	if fs.Handle, err = decodeCountedString(r); err != nil {
		return fs, err
	}
	count, err := r.i32()
	if err != nil {
		return fs, err
	}
	if count < 0 {
		count = 0
	}
	for i := int32(0); i < count; i++ {
		var arg TranslatedFSArgument
		if arg.Key, err = decodeCountedString(r); err != nil {
			return fs, err
		}
		if arg.String, err = decodeTranslatedFSString(r); err != nil {
			return fs, err
		}
		if arg.Value, err = decodeCountedString(r); err != nil {
			return fs, err
		}
		fs.Arguments = append(fs.Arguments, arg)
	}
	return fs, nil
}

func encodeTranslatedFSString(w *byteWriter, fs *TranslatedFSString) {
	w.u16(fs.Version)
	encodeCountedString(w, fs.Value)
	encodeCountedString(w, fs.Handle)
	w.i32(int32(len(fs.Arguments)))
	for i := range fs.Arguments {
		arg := &fs.Arguments[i]
		encodeCountedString(w, arg.Key)
		encodeTranslatedFSString(w, &arg.String)
		encodeCountedString(w, arg.Value)
	}
}
