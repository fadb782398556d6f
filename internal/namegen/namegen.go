// Package namegen produces randomized token metadata to pair with a
// dispensed image. Names are a base word plus a suffix, symbols derive from
// the base word with a two-digit disambiguator.
package namegen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var baseNames = []string{
	"Moon", "Rocket", "Diamond", "Golden", "Cyber", "Quantum", "Stellar", "Phoenix",
	"Thunder", "Lightning", "Fire", "Ice", "Storm", "Wind", "Earth", "Ocean",
	"Alpha", "Beta", "Gamma", "Delta", "Omega", "Prime", "Ultra", "Super",
	"Mega", "Giga", "Tera", "Nova", "Apex", "Elite", "Pro", "Max",
	"King", "Queen", "Lord", "Master", "Champion", "Legend", "Hero", "Warrior",
	"Dragon", "Tiger", "Lion", "Eagle", "Wolf", "Bear", "Shark", "Falcon",
	"Crypto", "Block", "Chain", "Hash", "Node", "Mint", "Stake", "Yield",
	"DeFi", "NFT", "Meta", "Web3", "DAO", "DEX", "AMM", "LP",
}

var suffixes = []string{
	"Token", "Coin", "Finance", "Protocol", "Network", "Chain", "Swap",
	"DAO", "AI", "Bot", "Lab", "Tech", "Verse", "World", "Land",
}

var descriptionTemplates = []string{
	"%[2]s is a revolutionary cryptocurrency designed for the future of decentralized finance.",
	"Join the %[1]s revolution! %[2]s brings innovation to the blockchain ecosystem.",
	"%[2]s - Empowering the next generation of digital assets and smart contracts.",
	"Experience the power of %[1]s! %[2]s is building the future of Web3.",
	"%[2]s combines cutting-edge technology with community-driven governance.",
	"Welcome to %[1]s! %[2]s is your gateway to decentralized opportunities.",
	"%[2]s - Where innovation meets opportunity in the world of cryptocurrency.",
	"Discover %[1]s! %[2]s is revolutionizing how we think about digital value.",
}

var labels = []string{"AI", "Meme", "DeFi", "Games", "Social", "Others"}

var domains = []string{
	"finance", "protocol", "network", "chain", "swap", "defi", "crypto",
	"token", "coin", "dao", "tech", "lab", "verse", "world", "app",
}

// TokenMeta is a complete metadata record for one generated token.
type TokenMeta struct {
	Name        string `json:"name"`
	Symbol      string `json:"shortName"`
	Description string `json:"desc"`
	Label       string `json:"label"`
	WebURL      string `json:"webUrl"`
	TwitterURL  string `json:"twitterUrl"`
	TelegramURL string `json:"telegramUrl"`
	PreSale     string `json:"preSale"`
}

// Generator produces TokenMeta values from its own random source.
type Generator struct {
	rand *rand.Rand
}

// NewGenerator creates a Generator seeded from the current time.
func NewGenerator() *Generator {
	return &Generator{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewGeneratorWithSource creates a Generator over a caller-supplied source.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rand: rand.New(src)}
}

// Generate returns one randomized token metadata record.
func (g *Generator) Generate() TokenMeta {
	baseName := baseNames[g.rand.Intn(len(baseNames))]
	suffix := suffixes[g.rand.Intn(len(suffixes))]
	fullName := baseName + " " + suffix

	description := fmt.Sprintf(descriptionTemplates[g.rand.Intn(len(descriptionTemplates))], baseName, fullName)
	website := strings.ToLower(baseName) + domains[g.rand.Intn(len(domains))]

	return TokenMeta{
		Name:        fullName,
		Symbol:      g.symbol(baseName),
		Description: description,
		Label:       labels[g.rand.Intn(len(labels))],
		WebURL:      "https://" + website + ".com",
		TwitterURL:  "",
		TelegramURL: "",
		PreSale:     "0",
	}
}

// symbol derives a 4-6 character ticker from the base name: short names are
// uppercased whole, longer ones keep their first three and last letters.
// A two-digit random tail keeps repeated draws distinct.
func (g *Generator) symbol(baseName string) string {
	var sym string
	if len(baseName) <= 4 {
		sym = strings.ToUpper(baseName)
	} else {
		sym = strings.ToUpper(baseName[:3] + baseName[len(baseName)-1:])
	}
	return sym + fmt.Sprintf("%d", 10+g.rand.Intn(90))
}
