package assistant

import "github.com/vmelnikov/kinosovetnik/internal/intent"

// Fallback replies mirror the historical assistant voice: an acknowledgement
// prefix followed by a genre-specific redirect.
const fallbackPrefix = "Понимаю! "

var fallbackReplies = map[intent.Genre]string{
	intent.GenreComedy:  "Вы хотите что-то веселое! Вот несколько отличных комедий:",
	intent.GenreDrama:   "Настроены на что-то серьезное? Рекомендую эти драмы:",
	intent.GenreRomance: "Романтическое настроение! Вот прекрасные фильмы о любви:",
	intent.GenreHorror:  "Хотите пощекотать нервы? Эти фильмы ужасов точно подойдут:",
	intent.GenreAction:  "Любите экшн? Вот захватывающие боевики:",
	intent.GenreMixed:   "Основываясь на вашем запросе и текущем времени, рекомендую:",
}

func fallbackReply(genre intent.Genre) string {
	reply, ok := fallbackReplies[genre]
	if !ok {
		reply = fallbackReplies[intent.GenreMixed]
	}
	return fallbackPrefix + reply
}
