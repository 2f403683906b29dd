package morse

// latin covers letters, digits and the punctuation set. Keys are uppercase.
var latin = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.",
	'G': "--.", 'H': "....", 'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.", 'Q': "--.-", 'R': ".-.",
	'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",

	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",

	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.", '!': "-.-.--",
	'/': "-..-.", '(': "-.--.", ')': "-.--.-", '&': ".-...", ':': "---...",
	';': "-.-.-.", '=': "-...-", '+': ".-.-.", '-': "-....-", '_': "..--.-",
	'"': ".-..-.", '$': "...-..-", '@': ".--.-.",
}

// jamo holds the Korean Morse codes for primitive consonants and vowels.
// Compound jamo never appear here; they are split first.
var jamo = map[rune]string{
	'ㄱ': ".-..", 'ㄴ': "..-.", 'ㄷ': "-...", 'ㄹ': "...-", 'ㅁ': "--",
	'ㅂ': ".--", 'ㅅ': "--.", 'ㅇ': "-.-", 'ㅈ': ".--.", 'ㅊ': "-.-.",
	'ㅋ': "-..-", 'ㅌ': "--..", 'ㅍ': "---", 'ㅎ': ".---",

	'ㅏ': ".", 'ㅑ': "..", 'ㅓ': "-", 'ㅕ': "...", 'ㅗ': ".-", 'ㅛ': "-.",
	'ㅜ': "....", 'ㅠ': ".-.", 'ㅡ': "-..", 'ㅣ': "..-", 'ㅐ': "--.-",
	'ㅔ': "-.--",
}

// compound splits tense consonants, diphthongs and final clusters into two
// primitives.
var compound = map[rune][2]rune{
	'ㄲ': {'ㄱ', 'ㄱ'}, 'ㄸ': {'ㄷ', 'ㄷ'}, 'ㅃ': {'ㅂ', 'ㅂ'},
	'ㅆ': {'ㅅ', 'ㅅ'}, 'ㅉ': {'ㅈ', 'ㅈ'},

	'ㅒ': {'ㅑ', 'ㅣ'}, 'ㅖ': {'ㅕ', 'ㅣ'}, 'ㅘ': {'ㅗ', 'ㅏ'},
	'ㅙ': {'ㅗ', 'ㅐ'}, 'ㅚ': {'ㅗ', 'ㅣ'}, 'ㅝ': {'ㅜ', 'ㅓ'},
	'ㅞ': {'ㅜ', 'ㅔ'}, 'ㅟ': {'ㅜ', 'ㅣ'}, 'ㅢ': {'ㅡ', 'ㅣ'},

	'ㄳ': {'ㄱ', 'ㅅ'}, 'ㄵ': {'ㄴ', 'ㅈ'}, 'ㄶ': {'ㄴ', 'ㅎ'},
	'ㄺ': {'ㄹ', 'ㄱ'}, 'ㄻ': {'ㄹ', 'ㅁ'}, 'ㄼ': {'ㄹ', 'ㅂ'},
	'ㄽ': {'ㄹ', 'ㅅ'}, 'ㄾ': {'ㄹ', 'ㅌ'}, 'ㄿ': {'ㄹ', 'ㅍ'},
	'ㅀ': {'ㄹ', 'ㅎ'}, 'ㅄ': {'ㅂ', 'ㅅ'},
}

// Syllable component order as laid out in the Unicode Hangul block.
var (
	initials = [...]rune{
		'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
		'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
	}
	medials = [...]rune{
		'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ',
		'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
	}
	finals = [...]rune{
		0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
		'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ',
		'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
	}
)
