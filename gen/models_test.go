package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSDL = `
"The episodes of the original trilogy"
enum Episode {
  NEWHOPE
  EMPIRE
  JEDI
}

interface Character {
  id: ID!
  name: String!
  friends: [Character]
  appearsIn: [Episode!]!
}

type Human implements Character {
  id: ID!
  name: String!
  friends: [Character]
  appearsIn: [Episode!]!
  height(unit: LengthUnit = METER): Float
  homePlanet: String @deprecated(reason: "Use homeWorld instead.")
}

type Droid implements Character {
  id: ID!
  name: String!
  friends: [Character]
  appearsIn: [Episode!]!
  primaryFunction: String
}

enum LengthUnit {
  METER
  FOOT
}

union SearchResult = Human | Droid

input ReviewInput {
  stars: Int!
  commentary: String
}

type Review {
  stars: Int!
  commentary: String
}

type Orphan {
  note: String
}

type Query {
  hero(episode: Episode): Character
  human(id: ID!): Human
  search(text: String!): [SearchResult!]
  serverTime: String
}

type Mutation {
  createReview(episode: Episode!, review: ReviewInput!): Review
}
`

func generate(t *testing.T, sdl string, opts Options) *Artifacts {
	t.Helper()
	out, err := Generate(buildSchema(t, sdl), opts)
	require.NoError(t, err)
	return out
}

func TestModels_Enum(t *testing.T) {
	models := string(generate(t, testSDL, Options{}).Models)

	assert.Contains(t, models, "// The episodes of the original trilogy\ntype Episode string")
	assert.Contains(t, models, `EpisodeNewhope Episode = "NEWHOPE"`)
	assert.Contains(t, models, `EpisodeEmpire  Episode = "EMPIRE"`)
	assert.Contains(t, models, "func (v *Episode) UnmarshalJSON(b []byte) error {")
	assert.Contains(t, models, "graphql2go.UnknownEnumValueError")
	assert.Contains(t, models, "var episodeValues = map[string]struct{}{")
}

func TestModels_Object(t *testing.T) {
	models := string(generate(t, testSDL, Options{}).Models)

	assert.Contains(t, models, "type Human struct {")
	assert.Contains(t, models, "`json:\"id\"`")
	assert.Contains(t, models, "`json:\"friends,omitempty\"`")
	assert.Contains(t, models, "`json:\"height,omitempty\"`")
	assert.Contains(t, models, "AppearsIn []Episode")
	assert.Contains(t, models, "Friends   []*Character")
	assert.Contains(t, models, "func (*Human) IsCharacter() {}")
	assert.Contains(t, models, "func (*Droid) IsCharacter() {}")
}

func TestModels_ObjectValidation(t *testing.T) {
	models := string(generate(t, testSDL, Options{}).Models)

	assert.Contains(t, models, "func (v *Human) UnmarshalJSON(b []byte) error {")
	assert.Contains(t, models, "var raw map[string]json.RawMessage")
	assert.Contains(t, models, `graphql2go.CheckField("Human", "id", &graphql2go.Shape{NonNull: true}, raw["id"])`)
	assert.Contains(t, models, "type plain Human")
	assert.Contains(t, models, "(*plain)(v)")
}

func TestModels_ValidationSkippedWhenNothingToCheck(t *testing.T) {
	models := string(generate(t, `
type Query { thing: Thing }
type Thing { a: String b: Int }
`, Options{}).Models)

	assert.Contains(t, models, "type Thing struct {")
	assert.NotContains(t, models, "func (v *Thing) UnmarshalJSON")
}

func TestModels_Variant(t *testing.T) {
	models := string(generate(t, testSDL, Options{}).Models)

	// Interface wrapper.
	assert.Contains(t, models, "type Character struct {")
	assert.Contains(t, models, "`json:\"__typename\"`")
	assert.Contains(t, models, "Value    CharacterValue `json:\"-\"`")
	assert.Contains(t, models, "type CharacterValue interface {\n\tIsCharacter()\n}")
	assert.Contains(t, models, "func (u *Character) UnmarshalJSON(b []byte) error {")
	assert.Contains(t, models, `case "Human":`)
	assert.Contains(t, models, "u.Value = new(Human)")
	assert.Contains(t, models, "graphql2go.UnknownTypeNameError")
	assert.Contains(t, models, `Possible: []string{"Human", "Droid"}`)

	// Union wrapper declares the member markers itself.
	assert.Contains(t, models, "type SearchResult struct {")
	assert.Contains(t, models, "func (*Human) IsSearchResult() {}")
	assert.Contains(t, models, "func (*Droid) IsSearchResult() {}")
}

func TestModels_MissingTypenameCase(t *testing.T) {
	models := string(generate(t, testSDL, Options{}).Models)

	assert.Contains(t, models, `case "":`)
	assert.Contains(t, models, "graphql2go.RequiredFieldMissingError")
	assert.Contains(t, models, `Path: "__typename"`)
}

func TestModels_Input(t *testing.T) {
	models := string(generate(t, testSDL, Options{}).Models)

	assert.Contains(t, models, "type ReviewInput struct {")
	assert.Contains(t, models, "Stars      int32")
	assert.Contains(t, models, "Commentary *string `json:\"commentary,omitempty\"`")
}

func TestModels_RootsSkipped(t *testing.T) {
	models := string(generate(t, testSDL, Options{}).Models)

	assert.NotContains(t, models, "type Query struct")
	assert.NotContains(t, models, "type Mutation struct")
}

func TestModels_ReferencedRootKept(t *testing.T) {
	models := string(generate(t, `
type Query {
  viewer: Viewer
}
type Viewer {
  root: Query
}
`, Options{}).Models)

	assert.Contains(t, models, "type Query struct {")
}

func TestModels_Deprecated(t *testing.T) {
	plain := string(generate(t, testSDL, Options{}).Models)
	assert.NotContains(t, plain, "HomePlanet")

	kept := string(generate(t, testSDL, Options{IncludeDeprecated: true}).Models)
	assert.Contains(t, kept, "HomePlanet")
}

func TestModels_DeprecatedEnumValuesStayDecodable(t *testing.T) {
	sdl := `
type Query { c: Color }
enum Color {
  RED
  BEIGE @deprecated(reason: "no longer produced")
}
`
	models := string(generate(t, sdl, Options{}).Models)

	// No constant for the deprecated value, but decoding still accepts it.
	assert.NotContains(t, models, "ColorBeige")
	assert.Contains(t, models, `"BEIGE": {}`)
}

func TestModels_CustomScalar(t *testing.T) {
	sdl := `
scalar DateTime
type Query { w: Widget }
type Widget { at: DateTime! }
`
	opaque := string(generate(t, sdl, Options{}).Models)
	assert.Contains(t, opaque, "type DateTime string")
	assert.Contains(t, opaque, "At DateTime")

	mapped := string(generate(t, sdl, Options{Scalars: map[string]string{"DateTime": "time.Time"}}).Models)
	assert.NotContains(t, mapped, "type DateTime")
	assert.Contains(t, mapped, "At time.Time")
}

func TestGenerate_NameCollision(t *testing.T) {
	_, err := Generate(buildSchema(t, `
type Query { t: T }
type T {
  user_id: ID
  userId: ID
}
`), Options{})

	var collErr *NameCollisionError
	require.ErrorAs(t, err, &collErr)
	assert.Equal(t, "UserId", collErr.Name)
}
