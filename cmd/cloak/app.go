package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	atomic_file "github.com/natefinch/atomic"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/zoobzio/cloak"
	"github.com/zoobzio/cloak/format"
)

// runner carries state shared by every command of one invocation.
type runner struct {
	config *Config
	log    *log.Logger
	prompt func(w io.Writer) (string, error)
}

func newApp(r *runner) *cli.App {
	app := cli.NewApp()
	app.Name = "cloak"
	app.Usage = "Hide encrypted messages in images and WAV audio"
	app.Version = version
	app.ErrWriter = os.Stderr
	app.Flags = getFlags()
	app.Before = r.setup
	app.Commands = []cli.Command{
		{
			Name:      "capacity",
			Usage:     "print how many message bytes FILE can hold",
			ArgsUsage: "FILE",
			Action:    r.capacity,
		},
		{
			Name:      "inspect",
			Usage:     "describe FILE as a carrier",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "format, f",
					Usage: "report format [" + strings.Join(format.Names(), "|") + "]",
				},
			},
			Action: r.inspect,
		},
		{
			Name:  "hide",
			Usage: "embed a message in a carrier file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "in, i",
					Usage: "read the carrier from `FILE`",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write the result to `FILE` (default: input name plus output suffix)",
				},
				cli.StringFlag{
					Name:  "message, m",
					Usage: "message `TEXT` to hide",
				},
				cli.StringFlag{
					Name:  "message-file",
					Usage: "read the message from `FILE`",
				},
				passphraseFlag(),
			},
			Action: r.hide,
		},
		{
			Name:      "reveal",
			Usage:     "print the message hidden in FILE",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{passphraseFlag()},
			Action:    r.reveal,
		},
	}
	return app
}

func getFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load configuration from `FILE`",
		},
		cli.StringFlag{
			Name:  "level, l",
			Usage: "logging level [debug|info|warn|error]",
		},
		cli.StringFlag{
			Name:  "log-format",
			Usage: "log output [text|json]",
		},
	}
}

func passphraseFlag() cli.Flag {
	return cli.StringFlag{
		Name:   "passphrase, p",
		Usage:  "passphrase (prompted for when omitted)",
		EnvVar: "CLOAK_PASSPHRASE",
	}
}

// setup loads configuration and applies global flag overrides.
func (r *runner) setup(c *cli.Context) error {
	config, err := NewConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("level") {
		level, err := GetLogLevel(c.String("level"))
		if err != nil {
			return err
		}
		config.LogLevel = level
	}
	if c.IsSet("log-format") {
		logFormat, err := parseLogFormat(c.String("log-format"))
		if err != nil {
			return err
		}
		config.LogFormat = logFormat
	}

	r.config = config
	r.log = NewLogger(c.App.ErrWriter, config.LogLevel, config.LogFormat)
	return nil
}

func (r *runner) capacity(c *cli.Context) error {
	path, data, err := readCarrierArg(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var (
		n      int
		detail string
	)
	if cloak.IsWAV(data) {
		n, err = cloak.AudioCapacity(ctx, data)
		if err == nil {
			detail = audioDetail(data)
		}
	} else {
		n, err = cloak.ImageCapacity(ctx, data)
	}
	if err != nil {
		return err
	}

	r.log.WithFields(log.Fields{"file": path, "capacity": n}).Debug("Computed capacity")
	fmt.Fprintf(c.App.Writer, "%s: %s bytes (%s)%s\n", path, humanize.Comma(int64(n)), humanize.Bytes(uint64(n)), detail)
	return nil
}

func (r *runner) inspect(c *cli.Context) error {
	path, data, err := readCarrierArg(c)
	if err != nil {
		return err
	}

	name := c.String("format")
	if name == "" {
		name = r.config.ReportFormat
	}
	codec, err := format.Lookup(name)
	if err != nil {
		return err
	}

	info, err := cloak.Inspect(context.Background(), data)
	if err != nil {
		return err
	}
	out, err := codec.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	r.log.WithFields(log.Fields{"file": path, "content_type": codec.ContentType()}).Debug("Inspected carrier")
	_, _ = c.App.Writer.Write(out)
	if !bytes.HasSuffix(out, []byte("\n")) {
		fmt.Fprintln(c.App.Writer)
	}
	return nil
}

func (r *runner) hide(c *cli.Context) error {
	in := c.String("in")
	if in == "" {
		return errors.New("missing --in FILE")
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	message, err := readMessage(c)
	if err != nil {
		return err
	}
	passphrase, err := r.passphrase(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var encoded []byte
	if cloak.IsWAV(data) {
		encoded, err = cloak.EncodeAudio(ctx, data, message, passphrase)
	} else {
		encoded, err = cloak.EncodeImage(ctx, data, message, passphrase)
	}
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		if out, err = r.outputPath(ctx, in, data); err != nil {
			return err
		}
	}
	if err := atomic_file.WriteFile(out, bytes.NewReader(encoded)); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	r.log.WithFields(log.Fields{
		"in":           in,
		"out":          out,
		"message_size": len(message),
	}).Info("Message hidden")
	fmt.Fprintln(c.App.Writer, out)
	return nil
}

func (r *runner) reveal(c *cli.Context) error {
	path, data, err := readCarrierArg(c)
	if err != nil {
		return err
	}
	passphrase, err := r.passphrase(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var message string
	if cloak.IsWAV(data) {
		message, err = cloak.DecodeAudio(ctx, data, passphrase)
	} else {
		message, err = cloak.DecodeImage(ctx, data, passphrase)
	}
	if err != nil {
		r.log.WithField("file", path).Warn("No message recovered")
		return err
	}

	r.log.WithFields(log.Fields{"file": path, "message_size": len(message)}).Debug("Message revealed")
	fmt.Fprintln(c.App.Writer, message)
	return nil
}

func (r *runner) passphrase(c *cli.Context) (string, error) {
	if p := c.String("passphrase"); p != "" {
		return p, nil
	}
	return r.prompt(c.App.ErrWriter)
}

// outputPath derives the default output name: the input name with the
// configured suffix and the extension of the format that will be written.
func (r *runner) outputPath(ctx context.Context, in string, data []byte) (string, error) {
	info, err := cloak.Inspect(ctx, data)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(in, filepath.Ext(in))
	return base + r.config.OutputSuffix + "." + info.OutputFormat, nil
}

func readCarrierArg(c *cli.Context) (string, []byte, error) {
	path := c.Args().First()
	if path == "" {
		return "", nil, errors.New("missing FILE argument")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return path, data, nil
}

func readMessage(c *cli.Context) (string, error) {
	msg, file := c.String("message"), c.String("message-file")
	switch {
	case msg != "" && file != "":
		return "", errors.New("use only one of --message and --message-file")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case msg != "":
		return msg, nil
	}
	return "", errors.New("missing --message or --message-file")
}

// audioDetail describes the playing time of a WAV carrier.
func audioDetail(data []byte) string {
	a, err := cloak.DecodeAudioCarrier(data)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" in %s of audio", durafmt.Parse(a.Duration()))
}
