package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

var speakerMu sync.Mutex

// openSound decodes the audio file at path based on its extension.
func openSound(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		err = errInvalidSoundFormat.Fmt(path)
	}

	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, err
	}

	return stream, format, nil
}

// PlaySound plays the audio file at path and blocks until it ends or ctx is
// cancelled.
func PlaySound(ctx context.Context, path string) error {
	stream, format, err := openSound(path)
	if err != nil {
		return err
	}

	defer stream.Close()

	speakerMu.Lock()
	defer speakerMu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 10)

	if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
		return err
	}

	defer speaker.Close()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
	case <-ctx.Done():
		speaker.Clear()
	}

	return nil
}
