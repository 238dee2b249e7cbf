package services

import "math/rand"

const (
	teamCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// TeamCodeLength is the fixed length of generated join codes.
	TeamCodeLength = 6
)

// GenerateUniqueCode draws a random uppercase code of the given length until
// it finds one absent from existing. Codes are human-shared join tokens, not
// secrets, so math/rand is fine; with 26^6 possible codes the expected number
// of retries stays constant while the code space dwarfs the team count.
func GenerateUniqueCode(existing map[string]struct{}, length int) string {
	buf := make([]byte, length)
	for {
		for i := range buf {
			buf[i] = teamCodeAlphabet[rand.Intn(len(teamCodeAlphabet))]
		}
		code := string(buf)
		if _, taken := existing[code]; !taken {
			return code
		}
	}
}
