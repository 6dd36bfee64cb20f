package status

import (
	"io"
	"strings"

	"github.com/chai2010/gettext-go/po"
)

const fuzzyFlag = "fuzzy"

// Counts are the message statistics of one text catalog, as msgfmt
// --statistics reports them.
type Counts struct {
	Translated   int `json:"translated"`
	Fuzzy        int `json:"fuzzy"`
	Untranslated int `json:"untranslated"`
}

func (c Counts) Total() int {
	return c.Translated + c.Fuzzy + c.Untranslated
}

// CountPO counts the translated, fuzzy and untranslated messages of a PO
// file. The header entry is not counted.
func CountPO(r io.Reader) (Counts, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Counts{}, err
	}

	file, err := po.Load(data)
	if err != nil {
		return Counts{}, err
	}

	var counts Counts
	for _, message := range file.Messages {
		counts.add(message)
	}

	return counts, nil
}

func (c *Counts) add(message po.Message) {
	if message.MsgId == "" && message.MsgContext == "" {
		return
	}

	if fuzzy(message) {
		c.Fuzzy++

		return
	}

	if !translated(message) {
		c.Untranslated++

		return
	}

	c.Translated++
}

func fuzzy(message po.Message) bool {
	for _, flag := range message.Flags {
		if strings.TrimSpace(flag) == fuzzyFlag {
			return true
		}
	}

	return false
}

func translated(message po.Message) bool {
	if message.MsgIdPlural == "" {
		return message.MsgStr != ""
	}

	if len(message.MsgStrPlural) == 0 {
		return false
	}

	for _, msgstr := range message.MsgStrPlural {
		if msgstr == "" {
			return false
		}
	}

	return true
}
