package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/midbel/motion"
	"github.com/midbel/slices"
)

var (
	DefaultShell     = "sh"
	DefaultShellArgs = "-c"
)

// Decoder reads the description of a chart. Bindings given in the file
// replace the default ones entirely.
type Decoder struct {
	file  string
	path  string
	cwd   string
	shell string

	env  *env
	scan *Scanner
	curr Token
	peek Token
}

func NewDecoder(r io.Reader) *Decoder {
	d := Decoder{
		cwd:   ".",
		env:   emptyEnv(),
		shell: DefaultShell,
		scan:  Scan(r),
	}
	if r, ok := r.(interface{ Name() string }); ok {
		d.file = r.Name()
		d.path = filepath.Dir(d.file)
	}
	if cwd, err := os.Getwd(); err == nil {
		d.cwd = cwd
	}
	d.next()
	d.next()
	return &d
}

func DecodeFile(file string) (*motion.Config, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return NewDecoder(r).Decode()
}

func (d *Decoder) Decode() (*motion.Config, error) {
	cfg := motion.DefaultConfig()
	cfg.Bindings = make(map[motion.Channel]string)
	return &cfg, d.decode(&cfg)
}

func (d *Decoder) decode(cfg *motion.Config) error {
	accept := func(tok Token) bool {
		return tok.Type == Keyword && tok.Literal != kwRender
	}
	if err := d.decodeBody(cfg, accept); err != nil {
		return err
	}
	if d.done() {
		return nil
	}
	if err := d.expectKw(kwRender); err != nil {
		return err
	}
	if err := d.decodeRender(cfg); err != nil {
		return err
	}
	d.skipEOL()
	if !d.done() {
		return d.decodeError(fmt.Sprintf("unexpected %s after render", d.curr))
	}
	return nil
}

func (d *Decoder) decodeRender(cfg *motion.Config) error {
	d.next()
	if err := d.expectKw(kwTo); err != nil {
		return err
	}
	d.next()
	var err error
	if cfg.Output, err = d.getString(); err != nil {
		return err
	}
	return d.eol()
}

func (d *Decoder) decodeBody(cfg *motion.Config, accept func(Token) bool) error {
	d.skipEOL()
	for accept(d.curr) && !d.done() {
		if err := d.expect(Keyword, "keyword expected"); err != nil {
			return err
		}
		var err error
		switch d.curr.Literal {
		case kwSet:
			err = d.decodeSet(cfg)
		case kwLoad:
			err = d.decodeLoad(cfg)
		case kwBind:
			err = d.decodeBind(cfg)
		case kwLabel:
			err = d.decodeLabel(cfg)
		case kwInclude:
			err = d.decodeInclude(cfg)
		case kwDefine:
			err = d.decodeDefine()
		default:
			err = d.decodeError(fmt.Sprintf("unexpected %q keyword", d.curr.Literal))
		}
		if err != nil {
			return err
		}
		d.skipEOL()
	}
	if !d.done() && !d.isKw(kwRender) {
		return d.decodeError(fmt.Sprintf("unexpected %s", d.curr))
	}
	return nil
}

func (d *Decoder) decodeDefine() error {
	d.next()
	if err := d.expect(Literal, "literal expected"); err != nil {
		return err
	}
	var (
		ident = d.curr.Literal
		pos   = d.curr.Position
	)
	d.next()
	values, err := d.getStringList()
	if err != nil {
		return err
	}
	if err := d.env.define(ident, values, pos); err != nil {
		return d.valueError(kwDefine, pos, err)
	}
	return d.eol()
}

func (d *Decoder) decodeLoad(cfg *motion.Config) error {
	d.next()
	var err error
	if cfg.Source, err = d.getString(); err != nil {
		return err
	}
	return d.eol()
}

func (d *Decoder) decodeInclude(cfg *motion.Config) error {
	d.next()
	name, err := d.getString()
	if err != nil {
		return err
	}
	list := []string{
		filepath.Join(d.path, name),
		filepath.Join(d.cwd, name),
	}
	for _, file := range list {
		err = d.decodeFile(file, cfg)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			break
		}
	}
	if err != nil {
		return err
	}
	return d.eol()
}

func (d *Decoder) decodeFile(file string, cfg *motion.Config) error {
	r, err := os.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()

	sub := NewDecoder(r)
	sub.env = d.env.wrap()
	sub.shell = d.shell
	return sub.decodeBody(cfg, func(tok Token) bool {
		return tok.Type != EOF
	})
}

func (d *Decoder) decodeBind(cfg *motion.Config) error {
	d.next()
	pos := d.curr.Position
	name, err := d.getString()
	if err != nil {
		return err
	}
	ch, err := motion.ParseChannel(name)
	if err != nil {
		return d.valueError(kwBind, pos, err)
	}
	field, err := d.getString()
	if err != nil {
		return err
	}
	cfg.Bindings[ch] = field
	if !d.isKw(kwUsing) {
		return d.eol()
	}
	d.next()
	pos = d.curr.Position
	str, err := d.getString()
	if err != nil {
		return err
	}
	if ch == motion.Key {
		return d.valueError(kwUsing, pos, motion.ErrNoScale)
	}
	fam, err := motion.ParseFamily(str)
	if err != nil {
		return d.valueError(kwUsing, pos, err)
	}
	cfg.Families[ch] = fam
	return d.eol()
}

func (d *Decoder) decodeLabel(cfg *motion.Config) error {
	d.next()
	field, err := d.getString()
	if err != nil {
		return err
	}
	label, err := d.getString()
	if err != nil {
		return err
	}
	if cfg.Labels == nil {
		cfg.Labels = make(map[string]string)
	}
	cfg.Labels[field] = label
	return d.eol()
}

func (d *Decoder) decodeSet(cfg *motion.Config) error {
	d.next()
	var (
		err error
		opt = d.curr
		cmd = d.curr.Literal
		pos = d.peek.Position
	)
	d.next()
	switch cmd {
	case "title":
		cfg.Title, err = d.getString()
	case "size":
		var list []float64
		if list, err = d.getFloatList(); err != nil {
			break
		}
		switch len(list) {
		case 1:
			cfg.Width, cfg.Height = list[0], list[0]
		case 2:
			cfg.Width, cfg.Height = list[0], list[1]
		default:
			err = fmt.Errorf("invalid number of values given for chart size")
		}
	case "padding":
		var list []float64
		if list, err = d.getFloatList(); err != nil {
			break
		}
		cfg.Padding, err = motion.PaddingFromList(list)
	case "duration":
		cfg.Duration, err = d.getDuration()
	case "easing":
		var str string
		if str, err = d.getString(); err != nil {
			break
		}
		if _, err = motion.ParseEasing(str); err == nil {
			cfg.Easing = str
		}
	case "whisker":
		cfg.Whisker, err = d.getFloat()
	case "aggregate":
		var str string
		if str, err = d.getString(); err != nil {
			break
		}
		cfg.Aggregate, err = motion.ParseAggregate(str)
	case "xticks":
		cfg.XTicks, err = d.getInt()
	case "yticks":
		cfg.YTicks, err = d.getInt()
	case "radius":
		cfg.MaxRadius, err = d.getFloat()
	default:
		return d.optionError(kwSet, opt)
	}
	if err != nil {
		return d.valueError(cmd, pos, err)
	}
	return d.eol()
}

func (d *Decoder) is(kind rune) bool {
	return d.curr.Type == kind
}

func (d *Decoder) peekIs(kind rune) bool {
	return d.peek.Type == kind
}

func (d *Decoder) isKw(kw string) bool {
	return d.is(Keyword) && d.curr.Literal == kw
}

func (d *Decoder) expectKw(kw string) error {
	if err := d.expect(Keyword, fmt.Sprintf("expected %q keyword", kw)); err != nil {
		return err
	}
	if d.curr.Literal != kw {
		return d.decodeError(fmt.Sprintf("%q expected, got %s", kw, d.curr.Literal))
	}
	return nil
}

func (d *Decoder) expect(kind rune, msg string) error {
	if d.is(kind) {
		return nil
	}
	return d.decodeError(msg)
}

func (d *Decoder) next() {
	d.curr = d.peek
	d.peek = d.scan.Scan()
}

func (d *Decoder) done() bool {
	return d.curr.Type == EOF
}

func (d *Decoder) eol() error {
	if !d.is(EOL) && !d.is(EOF) && !d.is(Comment) {
		return d.decodeError("expected end of line or end of file")
	}
	d.next()
	return nil
}

func (d *Decoder) optionError(item string, tok Token) error {
	return OptionError{
		Position: tok.Position,
		File:     d.file,
		Option:   tok.Literal,
		Section:  item,
	}
}

func (d *Decoder) decodeError(msg string) error {
	return DecodeError{
		Position: d.curr.Position,
		File:     d.file,
		Message:  msg,
	}
}

func (d *Decoder) valueError(option string, pos Position, err error) error {
	var (
		derr DecodeError
		oerr OptionError
	)
	if errors.As(err, &derr) || errors.As(err, &oerr) {
		return err
	}
	return ValueError{
		Option:   option,
		Err:      err,
		Position: pos,
	}
}

func (d *Decoder) skipEOL() {
	for d.is(EOL) || d.is(Comment) {
		d.next()
	}
}

func (d *Decoder) getString() (string, error) {
	var str string
	switch d.curr.Type {
	case Literal:
		str = d.curr.Literal
	case Variable:
		vs, err := d.env.resolve(d.curr.Literal)
		if err != nil {
			return "", d.valueError(d.curr.Literal, d.curr.Position, err)
		}
		str = slices.Fst(vs)
	case Command:
		var (
			out bytes.Buffer
			err bytes.Buffer
		)
		cmd := exec.Command(d.shell, DefaultShellArgs, d.curr.Literal)
		cmd.Stdout = &out
		cmd.Stderr = &err
		if errc := cmd.Run(); errc != nil {
			return "", fmt.Errorf("%w: %s", errc, err.String())
		}
		str = strings.TrimSpace(out.String())
	default:
		return "", d.decodeError("expected literal, variable or command")
	}
	defer d.next()
	return str, nil
}

func (d *Decoder) getInt() (int, error) {
	str, err := d.getString()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (d *Decoder) getFloat() (float64, error) {
	str, err := d.getString()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(str, 64)
}

// getDuration accepts Go durations and plain numbers of milliseconds.
func (d *Decoder) getDuration() (time.Duration, error) {
	str, err := d.getString()
	if err != nil {
		return 0, err
	}
	if ms, err := strconv.ParseFloat(str, 64); err == nil {
		return time.Duration(ms * float64(time.Millisecond)), nil
	}
	return time.ParseDuration(str)
}

func (d *Decoder) getStringList() ([]string, error) {
	var list []string
	for !d.is(EOL) && !d.is(EOF) && !d.is(Comment) {
		str, err := d.getString()
		if err != nil {
			return nil, err
		}
		list = append(list, str)
		if err := d.nextListItem(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (d *Decoder) getFloatList() ([]float64, error) {
	var list []float64
	for !d.is(EOL) && !d.is(EOF) && !d.is(Comment) {
		f, err := d.getFloat()
		if err != nil {
			return nil, err
		}
		list = append(list, f)
		if err := d.nextListItem(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (d *Decoder) nextListItem() error {
	switch d.curr.Type {
	case Comma:
		if d.peekIs(EOL) || d.peekIs(EOF) {
			return d.decodeError("end of line not expected after ','")
		}
		d.next()
	case EOF, EOL, Comment:
	default:
		return d.decodeError("expected ',' or end of line")
	}
	return nil
}
