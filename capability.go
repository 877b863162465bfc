package cloak

// CarrierKind identifies the medium a carrier embeds into.
type CarrierKind string

const (
	// KindImage embeds into the R, G and B channels of raster pixels.
	KindImage CarrierKind = "image"

	// KindAudio embeds into 16-bit PCM samples of a WAV file.
	KindAudio CarrierKind = "audio"
)

// Container formats recognised for carriers.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatGIF  = "gif"
	FormatJPEG = "jpeg"
	FormatWAV  = "wav"
)

// validImageFormats lists decodable image inputs.
var validImageFormats = map[string]bool{
	FormatPNG:  true,
	FormatBMP:  true,
	FormatGIF:  true,
	FormatJPEG: true,
}

// IsValidImageFormat returns true if images of the given format can be used
// as carriers.
func IsValidImageFormat(format string) bool {
	return validImageFormats[format]
}

// OutputFormat returns the lossless format an encoded image carrier is
// written in. BMP stays BMP; everything else becomes PNG.
func OutputFormat(format string) string {
	if format == FormatBMP {
		return FormatBMP
	}
	return FormatPNG
}
