// Copyright 2025 go-jpeg2000 Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jpegbridge

import (
	stdimage "image"
	"sync"

	"github.com/ajroetker/go-highway/hwy/contrib/image"
)

// stripeSample is the arithmetic type of a colour transform.
type stripeSample interface {
	int32 | float64
}

// loadYCbCr copies rows minY..minY+rows-1 of m into dst as luma and
// zero-centred chroma. Chroma planes are replicated to full resolution.
func loadYCbCr[T stripeSample](m *stdimage.YCbCr, minY, rows int, dst [3]*image.Image[T]) {
	x0 := m.Rect.Min.X
	y0 := m.Rect.Min.Y
	width := m.Rect.Dx()
	for r := range rows {
		yRow := dst[0].Row(r)
		cbRow := dst[1].Row(r)
		crRow := dst[2].Row(r)
		for x := range width {
			yi := m.YOffset(x0+x, y0+minY+r)
			ci := m.COffset(x0+x, y0+minY+r)
			yRow[x] = T(m.Y[yi])
			cbRow[x] = T(m.Cb[ci]) - 128
			crRow[x] = T(m.Cr[ci]) - 128
		}
	}
}

// storePlanes converts the first rows of src into 8-bit planes using conv.
func storePlanes[T stripeSample](src [3]*image.Image[T], rows int, planes [][]uint8, conv func(T) uint8) {
	width := src[0].Width()
	for c := range 3 {
		plane := planes[c]
		for r := range rows {
			row := src[c].Row(r)
			out := plane[r*width : (r+1)*width]
			for x := range out {
				out[x] = conv(row[x])
			}
		}
	}
}

// imageBufInt32 holds 6 pooled SIMD-aligned images for int32 color transforms
// (3 input + 3 output).
type imageBufInt32 struct {
	imgs [6]*image.Image[int32]
	w, h int
}

// imageBufFloat64 holds 6 pooled SIMD-aligned images for float64 color transforms.
type imageBufFloat64 struct {
	imgs [6]*image.Image[float64]
	w, h int
}

func (b *imageBufInt32) in() [3]*image.Image[int32] { return [3]*image.Image[int32](b.imgs[:3]) }
func (b *imageBufInt32) out() [3]*image.Image[int32] { return [3]*image.Image[int32](b.imgs[3:]) }
func (b *imageBufFloat64) in() [3]*image.Image[float64] { return [3]*image.Image[float64](b.imgs[:3]) }
func (b *imageBufFloat64) out() [3]*image.Image[float64] { return [3]*image.Image[float64](b.imgs[3:]) }

var int32ImagePool = sync.Pool{New: func() any { return new(imageBufInt32) }}
var float64ImagePool = sync.Pool{New: func() any { return new(imageBufFloat64) }}

func getInt32Buf(w, h int) *imageBufInt32 {
	buf := int32ImagePool.Get().(*imageBufInt32)
	if buf.w != w || buf.h != h {
		for i := range buf.imgs {
			buf.imgs[i] = image.NewImage[int32](w, h)
		}
		buf.w = w
		buf.h = h
	}
	return buf
}

func putInt32Buf(buf *imageBufInt32) {
	int32ImagePool.Put(buf)
}

func getFloat64Buf(w, h int) *imageBufFloat64 {
	buf := float64ImagePool.Get().(*imageBufFloat64)
	if buf.w != w || buf.h != h {
		for i := range buf.imgs {
			buf.imgs[i] = image.NewImage[float64](w, h)
		}
		buf.w = w
		buf.h = h
	}
	return buf
}

func putFloat64Buf(buf *imageBufFloat64) {
	float64ImagePool.Put(buf)
}
