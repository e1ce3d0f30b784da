// Package token defines the lexical tokens of the Animated Text wire format.
//
// The format reserves exactly three characters: '[' and ']' delimit
// directives, '/' separates directive fields and syllables. Everything
// else, except the newline that closes a caption line, is literal text.
package token
