package viz

import (
	"image"
	"image/gif"
	"io"
)

// EncodeGIF writes frames as a looping animation, delay in 100ths of a
// second per frame.
func EncodeGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}
