// ABOUTME: Render package moving samples into buffer lists
// ABOUTME: Provides Renderer plus Scatter and Gather layout helpers
// Package render moves decoded samples into buffer lists.
//
// Samples travel through the library as interleaved int32 values in 24-bit
// range. Scatter encodes them into a prepared bufferlist.List at the
// format's bit depth (16 and 24-bit little-endian integers, 32-bit float),
// one buffer per channel for non-interleaved formats. Gather is the inverse.
//
// Renderer drives a Source block by block:
//
//	r, err := render.New(render.Config{Format: format, Frames: 1024}, src)
//	for {
//	    frames, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    out.Write(r.List())
//	}
package render
