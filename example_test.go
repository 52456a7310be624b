package graphql2go_test

import (
	"fmt"
	"log"

	"github.com/mathsolpro/graphql2go"
)

func ExampleOperation_Render() {
	episode := &graphql2go.Variable{Name: "ep", Type: "Episode!"}
	review := &graphql2go.Variable{Name: "review", Type: "ReviewInput!"}

	op := &graphql2go.Operation{
		Type:      graphql2go.OpMutation,
		Name:      "CreateReviewForEpisode",
		Variables: []*graphql2go.Variable{episode, review},
		Queries: []*graphql2go.Field{{
			Name: "createReview",
			Arguments: []*graphql2go.Argument{
				{Name: "episode", Value: episode},
				{Name: "review", Value: review},
			},
			Selection: []any{"stars", "commentary"},
		}},
	}

	doc, err := op.Render()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(doc)

	// Output:
	// mutation CreateReviewForEpisode($ep: Episode!, $review: ReviewInput!) {
	//   createReview(episode: $ep, review: $review) {
	//     stars
	//     commentary
	//   }
	// }
}

func ExampleFragment() {
	comparison := &graphql2go.Fragment{
		Name:      "comparisonFields",
		On:        "Character",
		Selection: []any{"name", "appearsIn"},
	}

	op := &graphql2go.Operation{
		Queries: []*graphql2go.Field{
			{
				Name:      "hero",
				Alias:     "leftComparison",
				Arguments: []*graphql2go.Argument{{Name: "episode", Value: "EMPIRE"}},
				Selection: []any{comparison},
			},
			{
				Name:      "hero",
				Alias:     "rightComparison",
				Arguments: []*graphql2go.Argument{{Name: "episode", Value: "JEDI"}},
				Selection: []any{comparison},
			},
		},
		Fragments: []*graphql2go.Fragment{comparison},
	}

	doc, err := op.Render()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(doc)

	// Output:
	// query {
	//   leftComparison: hero(episode: EMPIRE) {
	//     ...comparisonFields
	//   }
	//   rightComparison: hero(episode: JEDI) {
	//     ...comparisonFields
	//   }
	// }
	//
	// fragment comparisonFields on Character {
	//   name
	//   appearsIn
	// }
}

func ExampleOperationBuilder_Build() {
	character := &graphql2go.TypeDesc{
		Name: "Character",
		Fields: graphql2go.FieldTable{
			"name":      {Type: "String", Leaf: true},
			"appearsIn": {Type: "Episode", Leaf: true},
		},
	}
	hero := graphql2go.FieldSpec{
		Type: "Character",
		Args: map[string]graphql2go.ArgSpec{
			"episode": {Type: "Episode", Kind: graphql2go.KindEnum, Shape: &graphql2go.Shape{}},
		},
	}

	query, vars, err := graphql2go.NewOperationBuilder(graphql2go.OpQuery, "hero", hero).
		Arg("episode", "JEDI").
		Select(graphql2go.NewSelection(character).Select("name").Select("appearsIn")).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(query)
	fmt.Println(vars["episode"])

	// Output:
	// query($episode: Episode) {
	//   hero(episode: $episode) {
	//     name
	//     appearsIn
	//   }
	// }
	// JEDI
}
