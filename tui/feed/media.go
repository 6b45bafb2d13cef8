package feed

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"resty.dev/v3"
)

// ensurePreviewCmd starts a fetch for the selected post's image unless a
// preview is already cached or in flight.
func (m *Model) ensurePreviewCmd() tea.Cmd {
	post, ok := m.SelectedPost()
	if !ok || post.ImageURI == "" {
		return nil
	}
	uri := post.ImageURI
	if _, done := m.previews[uri]; done {
		return nil
	}
	if m.fetching[uri] {
		return nil
	}
	m.fetching[uri] = true
	return fetchPreview(m.client, uri, previewWidth, previewHeight)
}

// fetchPreview loads the image behind uri (http(s) or a local path), decodes
// it, and renders a terminal preview.
func fetchPreview(client *resty.Client, uri string, w, h int) tea.Cmd {
	return func() tea.Msg {
		data, err := loadImageBytes(client, uri)
		if err != nil {
			return PreviewLoadedMsg{Key: uri, Err: err}
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return PreviewLoadedMsg{Key: uri, Err: fmt.Errorf("decoding image: %w", err)}
		}
		return PreviewLoadedMsg{Key: uri, Preview: renderHalfBlocks(img, w, h)}
	}
}

func loadImageBytes(client *resty.Client, uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		resp, err := client.R().Get(uri)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", uri, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("fetching %s: status %d", uri, resp.StatusCode())
		}
		return resp.Bytes(), nil
	}
	data, err := os.ReadFile(uri)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", uri, err)
	}
	return data, nil
}

// renderHalfBlocks draws the image as w×h character cells using the upper
// half block, packing two pixel rows per terminal row.
func renderHalfBlocks(img image.Image, w, h int) string {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || w <= 0 || h <= 0 {
		return ""
	}

	var b strings.Builder
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			top := sampleAt(img, col, row*2, w, h*2)
			bottom := sampleAt(img, col, row*2+1, w, h*2)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			b.WriteString(style.Render("▀"))
		}
		if row < h-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// sampleAt maps a cell in a gridW×gridH grid onto the source image using
// nearest-neighbor sampling.
func sampleAt(img image.Image, x, y, gridW, gridH int) color.Color {
	bounds := img.Bounds()
	sx := bounds.Min.X + x*bounds.Dx()/gridW
	sy := bounds.Min.Y + y*bounds.Dy()/gridH
	return img.At(sx, sy)
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
