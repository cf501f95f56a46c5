package chat

import (
	"strconv"
	"strings"
)

var translations = map[string]string{
	"chat.type.text":                    "<%s> %s",
	"chat.type.announcement":            "[%s] %s",
	"chat.type.emote":                   "* %s %s",
	"chat.type.admin":                   "[%s: %s]",
	"multiplayer.player.joined":         "%s joined the game",
	"multiplayer.player.left":           "%s left the game",
	"commands.message.display.incoming": "%s whispers to you: %s",
	"commands.message.display.outgoing": "You whisper to %s: %s",
}

// translate expands a translation key with nargs arguments. Literal text goes
// to text and each argument reference to arg. Unknown keys render as the key
// followed by the arguments.
func translate(key string, nargs int, text func(string), arg func(int)) {
	pattern, ok := translations[key]
	if !ok {
		text(key)
		for i := 0; i < nargs; i++ {
			text(" ")
			arg(i)
		}
		return
	}
	format(pattern, nargs, text, arg)
}

// format understands %s, %n$s and %%.
func format(pattern string, nargs int, text func(string), arg func(int)) {
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			text(b.String())
			b.Reset()
		}
	}
	next := 0
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		if ch != '%' || i+1 >= len(pattern) {
			b.WriteByte(ch)
			continue
		}
		rest := pattern[i+1:]
		switch {
		case rest[0] == '%':
			b.WriteByte('%')
			i++
		case rest[0] == 's':
			flush()
			if next < nargs {
				arg(next)
			}
			next++
			i++
		default:
			end := strings.Index(rest, "$s")
			if end <= 0 {
				b.WriteByte(ch)
				continue
			}
			n, err := strconv.Atoi(rest[:end])
			if err != nil {
				b.WriteByte(ch)
				continue
			}
			flush()
			if n >= 1 && n <= nargs {
				arg(n - 1)
			}
			i += end + 2
		}
	}
	flush()
}
