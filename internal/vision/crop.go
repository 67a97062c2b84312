package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/counterfoil/teller/internal/workflow"
)

// cropSignature cuts the located signature region out of the cheque
// image. The box carries relative [x_min, y_min, x_max, y_max]
// coordinates; the crop pads the box by 10% of its width and 15% of its
// height, clamped to the image bounds.
func cropSignature(cheque workflow.Image, box []float64) (*workflow.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(cheque.Data))
	if err != nil {
		return nil, fmt.Errorf("decode cheque image: %w", err)
	}

	bounds := src.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	x1 := int(box[0] * w)
	y1 := int(box[1] * h)
	x2 := int(box[2] * w)
	y2 := int(box[3] * h)

	padX := int(float64(x2-x1) * 0.1)
	padY := int(float64(y2-y1) * 0.15)

	rect := image.Rect(x1-padX, y1-padY, x2+padX, y2+padY).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("signature box %v is outside the image", box)
	}

	cropper, ok := src.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("image type %T does not support cropping", src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropper.SubImage(rect)); err != nil {
		return nil, fmt.Errorf("encode signature crop: %w", err)
	}

	return &workflow.Image{Data: buf.Bytes(), MIME: mimePNG}, nil
}
