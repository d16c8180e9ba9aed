package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

var errEmptyScreenshot = errors.New("screenshot buffer is empty")

// chromeBinaries are the executable names chromedp's allocator probes.
var chromeBinaries = []string{
	"headless_shell", "headless-shell", "chromium", "chromium-browser",
	"google-chrome", "google-chrome-stable", "google-chrome-beta", "google-chrome-unstable",
}

// chromeAvailable reports whether a Chrome binary is on PATH.
func chromeAvailable() bool {
	for _, name := range chromeBinaries {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

// generateImage rasterises the svg in headless Chrome and writes it as PNG or
// JPEG. The svg must be visible; Chrome cannot screenshot a hidden element.
func generateImage(ctx context.Context, svgString, format string, quality int, timeout time.Duration, outputWriter io.Writer) error {
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svgString))
	Logger().Debug("created data URI for svg", "bytes", len(dataURI))

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.DisableGPU,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		browserCtx, cancelTimeout = context.WithTimeout(browserCtx, timeout)
		defer cancelTimeout()
	}

	var screenshotBuf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &screenshotBuf, chromedp.ByQuery),
	}

	Logger().Debug("running chromedp tasks (navigate and screenshot)")
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(screenshotBuf) == 0 {
		return errEmptyScreenshot
	}
	return encodeScreenshot(screenshotBuf, format, quality, outputWriter)
}

// encodeScreenshot copies a PNG screenshot or re-encodes it as JPEG.
func encodeScreenshot(screenshot []byte, format string, quality int, outputWriter io.Writer) error {
	screenshotReader := bytes.NewReader(screenshot)
	switch format {
	case "png":
		if _, err := io.Copy(outputWriter, screenshotReader); err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %w", err)
		}
	case "jpg", "jpeg":
		img, err := png.Decode(screenshotReader)
		if err != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %w", err)
		}
		if err := jpeg.Encode(outputWriter, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("image format %q: %w", format, errUnsupportedFormat)
	}
	Logger().Info("encoded image using chromedp", "format", strings.ToUpper(format))
	return nil
}
