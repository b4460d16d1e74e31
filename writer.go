// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stardict

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-stardict/v2/dict"
	"github.com/ianlewis/go-stardict/v2/glossary"
	"github.com/ianlewis/go-stardict/v2/idx"
	"github.com/ianlewis/go-stardict/v2/ifo"
	"github.com/ianlewis/go-stardict/v2/internal/binutil"
	"github.com/ianlewis/go-stardict/v2/internal/gzfile"
	"github.com/ianlewis/go-stardict/v2/internal/sortlist"
	"github.com/ianlewis/go-stardict/v2/syn"
)

// DetectSampleSize is the number of entries sampled to choose the article
// format when it is detected automatically.
const DetectSampleSize = 1000

// writerVersion is the .ifo version written by the Writer. Only version
// 3.0.0 supports 64-bit offsets.
const writerVersion = "3.0.0"

var (
	// ErrSizeLimit indicates that the .dict file grew past the largest offset
	// that can be stored in the index.
	ErrSizeLimit = errors.New("dictionary too large, enable large-file mode for 64-bit offsets")

	// ErrInvalidSameTypeSequence indicates that the writer was configured
	// with an unsupported sametypesequence.
	ErrInvalidSameTypeSequence = errors.New("invalid sametypesequence")

	// ErrWriterFinished indicates that an entry was written after Finish.
	ErrWriterFinished = errors.New("writer finished")
)

// ifo keys computed by the Writer. Values for these keys in the
// WriterOptions' Info are ignored.
var computedKeys = []string{
	"version",
	"bookname",
	"wordcount",
	"synwordcount",
	"idxfilesize",
	"idxoffsetbits",
	"sametypesequence",
}

// WriterOptions are options for writing a dictionary.
type WriterOptions struct {
	// LargeFile enables 64-bit article offsets in the index.
	LargeFile bool

	// SameTypeSequence sets a dictionary wide article format, one of "h",
	// "m", or "x". Articles are then written without type bytes. If empty,
	// articles carry their own type bytes unless DetectSameTypeSequence is
	// set.
	SameTypeSequence string

	// DetectSameTypeSequence chooses the sametypesequence from the first
	// DetectSampleSize entries when SameTypeSequence is empty.
	DetectSameTypeSequence bool

	// MergeSyns writes every headword of an entry to the index instead of
	// writing alternates to a .syn file.
	MergeSyns bool

	// SQLite sorts the index on disk rather than in memory.
	SQLite bool

	// DictZip compresses the .dict and .syn files with dictzip when the
	// dictionary is finished.
	DictZip bool

	// Info holds metadata written to the .ifo file such as bookname,
	// author, email, website, date, and description.
	Info *glossary.Info

	// Fixup is applied to every definition before it is written.
	Fixup func(glossary.Definition) glossary.Definition

	// Logger receives warnings about skipped entries. If nil,
	// [slog.Default] is used.
	Logger *slog.Logger
}

// DefaultWriterOptions is the default options for a Writer.
var DefaultWriterOptions = &WriterOptions{
	DetectSameTypeSequence: true,
}

type writerState int

const (
	stateOpened writerState = iota
	stateReceiving
	stateFinished
	stateFailed
)

// Writer writes a stardict dictionary. Entries are written with Write and
// the dictionary is completed with Finish.
type Writer struct {
	opts   WriterOptions
	logger *slog.Logger

	state writerState
	err   error

	base   string
	resDir string

	dictFile   *os.File
	dictWriter *dict.Writer
	enc        idx.OffsetEncoder

	// maxOffset is the largest .dict offset that can be stored in the index.
	maxOffset uint64

	// sequence is the sametypesequence. It is nil for general articles.
	sequence []dict.DataType
	decided  bool
	pending  []*glossary.Entry

	idxList sortlist.List
	synList sortlist.List

	// count is the number of articles written.
	count uint32
}

// Create creates a new dictionary. path is either the path to the .ifo file
// to write or a directory, in which case the files are named after the
// directory.
func Create(path string, options *WriterOptions) (*Writer, error) {
	if options == nil {
		options = DefaultWriterOptions
	}

	w := &Writer{
		opts:   *options,
		logger: options.Logger,
		base:   basePath(path),
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.opts.Fixup == nil {
		w.opts.Fixup = func(d glossary.Definition) glossary.Definition { return d }
	}

	switch w.opts.SameTypeSequence {
	case "":
		w.decided = !w.opts.DetectSameTypeSequence || w.opts.MergeSyns
	case "h", "m", "x":
		w.decided = true
		if !w.opts.MergeSyns {
			w.sequence = []dict.DataType{dict.DataType(w.opts.SameTypeSequence[0])}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSameTypeSequence, w.opts.SameTypeSequence)
	}

	bits := 32
	if w.opts.LargeFile {
		bits = 64
	}
	var err error
	w.enc, err = idx.NewOffsetEncoder(bits)
	if err != nil {
		return nil, err
	}
	w.maxOffset = w.enc.Max()

	// The resource directory is created by the first resource entry.
	w.resDir = filepath.Join(filepath.Dir(w.base), "res")

	// Files from an earlier write would be found by readers ahead of or
	// alongside the new ones.
	for _, exts := range [][]string{dict.Exts, idx.Exts, syn.Exts} {
		if err := gzfile.Remove(w.base, exts); err != nil {
			return nil, err
		}
	}

	w.dictFile, err = os.Create(w.base + ".dict")
	if err != nil {
		return nil, fmt.Errorf("creating .dict file: %w", err)
	}

	if err := w.openLists(); err != nil {
		_ = w.dictFile.Close()
		return nil, err
	}

	if w.decided {
		if err := w.startDict(); err != nil {
			w.cleanup()
			return nil, err
		}
	}

	w.state = stateOpened
	return w, nil
}

// basePath returns the path of the dictionary files without extension.
func basePath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".ifo") {
		return strings.TrimSuffix(path, filepath.Ext(path))
	}
	if fi, err := os.Stat(path); (err == nil && fi.IsDir()) || strings.HasSuffix(path, string(filepath.Separator)) {
		path = filepath.Clean(path)
		return filepath.Join(path, filepath.Base(path))
	}
	return path
}

func (w *Writer) openLists() error {
	if !w.opts.SQLite {
		w.idxList = sortlist.NewMemory()
		w.synList = sortlist.NewMemory()
		return nil
	}

	var err error
	w.idxList, err = sortlist.NewSQLite(w.base + ".idx.db")
	if err != nil {
		return err
	}
	w.synList, err = sortlist.NewSQLite(w.base + ".syn.db")
	if err != nil {
		_ = w.idxList.Close()
		return err
	}
	return nil
}

func (w *Writer) startDict() error {
	var err error
	w.dictWriter, err = dict.NewWriter(w.dictFile, &dict.Options{
		SameTypeSequence: w.sequence,
	})
	return err
}

// Write writes an entry to the dictionary. Resource entries are saved to the
// resource directory. Entries with no valid headword are logged and skipped.
func (w *Writer) Write(e *glossary.Entry) error {
	switch w.state {
	case stateFinished:
		return ErrWriterFinished
	case stateFailed:
		return w.err
	}
	w.state = stateReceiving

	if err := w.write(e); err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *Writer) write(e *glossary.Entry) error {
	if e.IsData() {
		if _, err := e.Save(w.resDir); err != nil {
			return err
		}
		return nil
	}

	defs := make([]glossary.Definition, len(e.Definitions()))
	for i, d := range e.Definitions() {
		defs[i] = w.opts.Fixup(d)
	}
	e, err := glossary.NewEntryDefinitions(e.Words(), defs)
	if err != nil {
		return err
	}

	if w.decided {
		return w.writeEntry(e)
	}

	w.pending = append(w.pending, e)
	if len(w.pending) < DetectSampleSize {
		return nil
	}
	return w.decide()
}

// decide chooses the article format from the pending entries and writes
// them.
func (w *Writer) decide() error {
	w.decided = true
	if f := detectSequence(w.pending); f != 0 {
		w.sequence = []dict.DataType{dict.DataType(f)}
		w.logger.Debug("detected sametypesequence",
			"path", w.base,
			"sametypesequence", f.String(),
			"sample", len(w.pending),
		)
	}
	if err := w.startDict(); err != nil {
		return err
	}

	pending := w.pending
	w.pending = nil
	for _, e := range pending {
		if err := w.writeEntry(e); err != nil {
			return err
		}
	}
	return nil
}

// detectSequence returns the format of compact articles for the sampled
// entries, or zero if the articles should carry their own type bytes.
func detectSequence(sample []*glossary.Entry) glossary.Format {
	if len(sample) == 0 {
		return 0
	}
	var plain, html int
	for _, e := range sample {
		switch e.Format() {
		case glossary.FormatPlain:
			plain++
		case glossary.FormatHTML:
			html++
		}
	}
	switch {
	case plain*100 >= len(sample)*97:
		return glossary.FormatPlain
	case html*100 >= len(sample)*50:
		return glossary.FormatHTML
	default:
		return 0
	}
}

// headwords returns the entry's headwords that can be written to the index.
func (w *Writer) headwords(e *glossary.Entry) []string {
	words := make([]string, 0, len(e.Words()))
	for _, word := range e.Words() {
		if word == "" || len(word) > idx.MaxWordSize || strings.IndexByte(word, 0) >= 0 {
			w.logger.Warn("skipping invalid headword",
				"path", w.base,
				"entry", e.Word(),
				"word", word,
			)
			continue
		}
		words = append(words, word)
	}
	return words
}

// article returns the .dict article for the entry.
func (w *Writer) article(e *glossary.Entry) *dict.Word {
	if len(w.sequence) > 0 {
		texts := make([]string, 0, len(e.Definitions()))
		for _, d := range e.Definitions() {
			texts = append(texts, d.Text)
		}
		return &dict.Word{
			Data: []*dict.Data{
				{
					Type: w.sequence[0],
					Data: []byte(strings.Join(texts, "\n")),
				},
			},
		}
	}

	word := &dict.Word{}
	for _, d := range e.Definitions() {
		t, err := dict.ParseDataType(byte(d.Format))
		if err != nil {
			t = dict.DataType(glossary.DetectFormat(d.Text))
		}
		word.Data = append(word.Data, &dict.Data{
			Type: t,
			Data: []byte(d.Text),
		})
	}
	return word
}

func (w *Writer) writeEntry(e *glossary.Entry) error {
	words := w.headwords(e)
	if len(words) == 0 {
		w.logger.Warn("skipping entry without headwords", "path", w.base)
		return nil
	}

	offset, size, err := w.dictWriter.Write(w.article(e))
	if errors.Is(err, dict.ErrInvalidData) {
		w.logger.Warn("skipping entry",
			"path", w.base,
			"word", words[0],
			"error", err,
		)
		return nil
	}
	if err != nil {
		return err
	}
	if w.dictWriter.Offset() > w.maxOffset {
		return fmt.Errorf("%w: %q ends at offset %d", ErrSizeLimit, words[0], w.dictWriter.Offset())
	}

	mark, err := w.enc.Append(nil, offset, size)
	if err != nil {
		return err
	}

	if w.opts.MergeSyns {
		return w.writeMerged(words, mark)
	}

	if err := w.idxList.Append(sortlist.Item{
		Key:   []byte(words[0]),
		Value: mark,
	}); err != nil {
		return err
	}
	for _, alt := range words[1:] {
		if err := w.synList.Append(sortlist.Item{
			Key:   []byte(alt),
			Value: binutil.AppendUint32(nil, w.count),
		}); err != nil {
			return err
		}
	}
	w.count++
	return nil
}

// Finish sorts and writes the index, synonym, and .ifo files. The writer
// cannot be used after Finish returns.
func (w *Writer) Finish() error {
	switch w.state {
	case stateFinished:
		return ErrWriterFinished
	case stateFailed:
		return w.err
	}

	if err := w.finish(); err != nil {
		return w.fail(err)
	}
	w.state = stateFinished
	return nil
}

func (w *Writer) finish() error {
	defer w.cleanup()

	if !w.decided {
		if err := w.decide(); err != nil {
			return err
		}
	}

	if err := w.dictWriter.Flush(); err != nil {
		return err
	}
	if err := w.dictFile.Close(); err != nil {
		return fmt.Errorf("closing .dict file: %w", err)
	}

	positions, idxSize, err := w.writeIdx()
	if err != nil {
		return err
	}

	synCount := 0
	if !w.opts.MergeSyns {
		synCount, err = w.writeSyn(positions)
		if err != nil {
			return err
		}
	}
	if synCount == 0 {
		if err := gzfile.Remove(w.base, syn.Exts); err != nil {
			return err
		}
	}

	if err := w.writeIfo(w.idxList.Len(), synCount, idxSize); err != nil {
		return err
	}

	if w.opts.DictZip {
		if err := compress(w.base + ".dict"); err != nil {
			return err
		}
		if synCount > 0 {
			if err := compress(w.base + ".syn"); err != nil {
				return err
			}
		}
	}

	if entries, err := os.ReadDir(w.resDir); err == nil && len(entries) == 0 {
		if err := os.Remove(w.resDir); err != nil {
			return fmt.Errorf("removing resource directory: %w", err)
		}
	}
	return nil
}

// writeIdx writes the sorted index. It returns the index position of each
// article by write order along with the size of the .idx file.
func (w *Writer) writeIdx() ([]uint32, int64, error) {
	if err := w.idxList.Sort(); err != nil {
		return nil, 0, err
	}

	f, err := os.Create(w.base + ".idx")
	if err != nil {
		return nil, 0, fmt.Errorf("creating .idx file: %w", err)
	}
	defer f.Close()

	iw, err := idx.NewWriter(f, &idx.Options{OffsetBits: w.enc.Bits()})
	if err != nil {
		return nil, 0, err
	}

	it, err := w.idxList.Iter()
	if err != nil {
		return nil, 0, err
	}
	defer it.Close()

	var positions []uint32
	if !w.opts.MergeSyns {
		positions = make([]uint32, w.idxList.Len())
	}
	pos := uint32(0)
	for it.Next() {
		item := it.Item()
		offset, size, err := w.enc.Decode(item.Value)
		if err != nil {
			return nil, 0, err
		}
		if err := iw.Write(&idx.Word{
			Word:   string(item.Key),
			Offset: offset,
			Size:   size,
		}); err != nil {
			return nil, 0, err
		}
		if positions != nil {
			// Without merged synonyms there is one index item per article
			// so the item's Seq is the article's write order.
			positions[item.Seq] = pos
		}
		pos++
	}
	if err := it.Err(); err != nil {
		return nil, 0, err
	}
	if err := iw.Flush(); err != nil {
		return nil, 0, err
	}
	if err := f.Close(); err != nil {
		return nil, 0, fmt.Errorf("closing .idx file: %w", err)
	}
	return positions, iw.Size(), nil
}

// writeSyn writes the sorted synonym index and returns the number of
// synonyms. No file is written if there are no synonyms.
func (w *Writer) writeSyn(positions []uint32) (int, error) {
	if w.synList.Len() == 0 {
		return 0, nil
	}
	if err := w.synList.Sort(); err != nil {
		return 0, err
	}

	f, err := os.Create(w.base + ".syn")
	if err != nil {
		return 0, fmt.Errorf("creating .syn file: %w", err)
	}
	defer f.Close()

	sw := syn.NewWriter(f)

	it, err := w.synList.Iter()
	if err != nil {
		return 0, err
	}
	defer it.Close()

	for it.Next() {
		item := it.Item()
		n, err := binutil.Uint32(item.Value)
		if err != nil {
			return 0, err
		}
		if err := sw.Write(&syn.Word{
			Word:              string(item.Key),
			OriginalWordIndex: positions[n],
		}); err != nil {
			return 0, err
		}
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	if err := sw.Flush(); err != nil {
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing .syn file: %w", err)
	}
	return sw.Count(), nil
}

func (w *Writer) writeIfo(wordcount, synwordcount int, idxfilesize int64) error {
	i := &ifo.Ifo{}
	i.Set("version", writerVersion)

	bookname := filepath.Base(w.base)
	if w.opts.Info != nil && w.opts.Info.Value("bookname") != "" {
		bookname = w.opts.Info.Value("bookname")
	}
	i.Set("bookname", bookname)
	i.Set("wordcount", strconv.Itoa(wordcount))
	if synwordcount > 0 {
		i.Set("synwordcount", strconv.Itoa(synwordcount))
	}
	i.Set("idxfilesize", strconv.FormatInt(idxfilesize, 10))
	if w.opts.LargeFile {
		i.Set("idxoffsetbits", "64")
	}
	if len(w.sequence) > 0 {
		i.Set("sametypesequence", w.sequence[0].String())
	}

	if w.opts.Info != nil {
		for _, key := range w.opts.Info.Keys() {
			if !slices.Contains(computedKeys, key) {
				i.Set(key, w.opts.Info.Value(key))
			}
		}
	}

	f, err := os.Create(w.base + ".ifo")
	if err != nil {
		return fmt.Errorf("creating .ifo file: %w", err)
	}
	defer f.Close()

	if _, err := i.WriteTo(f); err != nil {
		return fmt.Errorf("writing .ifo file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing .ifo file: %w", err)
	}
	return nil
}

// compress replaces the file at path with a dictzip compressed path.dz.
func compress(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}
	defer src.Close()

	dst, err := os.Create(path + ".dz")
	if err != nil {
		return fmt.Errorf("creating %q: %w", path+".dz", err)
	}
	defer dst.Close()

	z, err := dictzip.NewWriter(dst)
	if err != nil {
		return fmt.Errorf("creating dictzip writer: %w", err)
	}
	if _, err := io.Copy(z, src); err != nil {
		return fmt.Errorf("compressing %q: %w", path, err)
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("compressing %q: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path+".dz", err)
	}
	_ = src.Close()

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %q: %w", path, err)
	}
	return nil
}

func (w *Writer) fail(err error) error {
	w.err = err
	w.state = stateFailed
	w.cleanup()
	return err
}

// cleanup closes the sort lists and the .dict file. Partially written files
// are left in place.
func (w *Writer) cleanup() {
	if w.dictFile != nil {
		if w.dictWriter != nil && w.state != stateFinished {
			_ = w.dictWriter.Flush()
		}
		if err := w.dictFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			w.logger.Warn("closing .dict file", "path", w.base, "error", err)
		}
	}
	for _, l := range []sortlist.List{w.idxList, w.synList} {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil {
			w.logger.Warn("closing sort list", "path", w.base, "error", err)
		}
	}
	w.idxList = nil
	w.synList = nil
	w.dictFile = nil
}
