// Package template provides canned documents that teach the import format.
package template

import (
	"fmt"

	"synthdeck/internal/model"
)

// Kind selects one of the canned documents
type Kind string

const (
	KindMinimal Kind = "minimal"
	KindExample Kind = "example"
	KindFull    Kind = "full"
)

// Kinds lists the available template kinds.
var Kinds = []Kind{KindMinimal, KindExample, KindFull}

// Document returns the template document for kind.
func Document(kind Kind) (model.Document, error) {
	switch kind {
	case KindMinimal:
		return Minimal(), nil
	case KindExample:
		return Example(), nil
	case KindFull:
		return Full(), nil
	}
	return model.Document{}, fmt.Errorf("unknown template %q (valid: minimal, example, full)", kind)
}

// Render returns the template as 2-space-indented JSON.
func Render(kind Kind) ([]byte, error) {
	doc, err := Document(kind)
	if err != nil {
		return nil, err
	}
	return doc.Encode()
}

// Filename returns the download filename for kind.
func Filename(kind Kind) string {
	return fmt.Sprintf("research-data-%s-template.json", kind)
}

// Default is the bundled dataset used when no cache exists yet.
func Default() model.Document {
	return Full()
}

// Minimal is a skeleton with placeholder text for every required field.
func Minimal() model.Document {
	return model.Document{Themes: []model.Theme{
		{
			ID:           "t1",
			Title:        "Your Theme Title Here",
			Description:  "Describe what this theme represents...",
			Sources:      []string{"Source Type 1", "Source Type 2"},
			ClusterCount: 1,
			Color:        model.ColorBlue,
			Clusters: []model.Cluster{
				{
					ID:          "c1",
					Name:        "Your Cluster Name",
					Summary:     "Summary of what this cluster represents...",
					EntityCount: 1,
					Entities: []model.Entity{
						{
							ID:            "e1",
							Statement:     "The main finding or insight statement",
							Type:          model.TypeJTBD,
							Source:        "Interview #1",
							TranscriptID:  "T-001",
							ParticipantID: "P-001",
							Timestamp:     "00:00",
							Date:          "Jan 1, 2024",
							VerbatimQuote: "The exact words the participant said...",
							Context:       "The question or context that prompted this response...",
						},
					},
				},
			},
		},
	}}
}

// Example is a single realistic theme with pains and gains filled in.
func Example() model.Document {
	return model.Document{Themes: []model.Theme{
		{
			ID:           "t1",
			Title:        "Users need better collaboration tools",
			Description:  "Research participants consistently mentioned challenges when working with teammates. They want seamless ways to share work, get feedback, and stay aligned without excessive meetings.",
			Sources:      []string{"User Interviews", "Survey Results", "Usage Analytics"},
			ClusterCount: 2,
			Color:        model.ColorBlue,
			Clusters: []model.Cluster{
				{
					ID:          "c1",
					Name:        "Async Communication Needs",
					Summary:     "Users want to communicate without scheduling meetings",
					EntityCount: 2,
					Entities: []model.Entity{
						{
							ID:            "e1",
							Statement:     "When I need feedback on my work, I want to share it asynchronously, so that I don't have to schedule yet another meeting.",
							Type:          model.TypeJTBD,
							Pains:         []string{"Too many meetings", "Slow feedback cycles"},
							Gains:         []string{"More focused work time", "Faster iterations"},
							Source:        "Interview #12",
							TranscriptID:  "T-012",
							ParticipantID: "P-008",
							Timestamp:     "15:42",
							Date:          "Jan 15, 2024",
							VerbatimQuote: "I'm so tired of meetings. Can't I just share my screen recording and get comments?",
							Context:       "Question: How do you currently get feedback on your work?",
						},
						{
							ID:            "e2",
							Statement:     "Meeting fatigue is real and impacts productivity",
							Type:          model.TypePain,
							Pains:         []string{"Mental exhaustion", "Context switching"},
							Source:        "Interview #15",
							TranscriptID:  "T-015",
							ParticipantID: "P-011",
							Timestamp:     "22:10",
							Date:          "Jan 18, 2024",
							VerbatimQuote: "By 3pm I'm completely drained from back-to-back calls.",
							Context:       "Question: Describe your typical workday",
						},
					},
				},
				{
					ID:          "c2",
					Name:        "Real-time Awareness",
					Summary:     "Teams want to know what others are working on without asking",
					EntityCount: 1,
					Entities: []model.Entity{
						{
							ID:            "e3",
							Statement:     "Visibility into team progress reduces uncertainty",
							Type:          model.TypeGain,
							Gains:         []string{"Reduced anxiety", "Better planning", "Less duplication"},
							Source:        "Interview #20",
							TranscriptID:  "T-020",
							ParticipantID: "P-014",
							Timestamp:     "08:30",
							Date:          "Jan 25, 2024",
							VerbatimQuote: "When I can see the dashboard and know where everyone is at, I sleep better.",
							Context:       "Question: What helps you feel confident about team progress?",
						},
					},
				},
			},
		},
	}}
}

// Full is a multi-theme document exercising every entity type.
func Full() model.Document {
	return model.Document{Themes: []model.Theme{
		{
			ID:           "t1",
			Title:        "Decision-making requires peer validation",
			Description:  "Users struggle to make confident decisions without input from trusted colleagues. They seek validation mechanisms before committing to important choices.",
			Sources:      []string{"JTBD Clusters", "Atomic Facts", "Interview Transcripts"},
			ClusterCount: 2,
			Color:        model.ColorPurple,
			Clusters: []model.Cluster{
				{
					ID:          "c1",
					Name:        "Collaborative Decision Validation",
					Summary:     "Users want to share decisions with colleagues before finalizing",
					EntityCount: 2,
					Entities: []model.Entity{
						{
							ID:            "e1",
							Statement:     "When making product decisions, I want to run them by my team first, so I can catch blindspots before exec meetings.",
							Type:          model.TypeJTBD,
							Pains:         []string{"Fear of public mistakes", "Lack of confidence"},
							Gains:         []string{"Increased confidence", "Better decisions", "Team alignment"},
							Source:        "Interview #47",
							TranscriptID:  "T-032",
							ParticipantID: "P-023",
							Timestamp:     "31:42",
							Date:          "Nov 8, 2024",
							VerbatimQuote: "I never feel confident unless I've bounced the idea off Sarah and Mike first.",
							Context:       "Question: Tell me about a time you felt uncertain about a decision",
						},
						{
							ID:            "e2",
							Statement:     "Assumption validation prevents costly mistakes",
							Type:          model.TypeFact,
							Source:        "Interview #48",
							TranscriptID:  "T-033",
							ParticipantID: "P-024",
							Timestamp:     "15:30",
							Date:          "Nov 9, 2024",
							VerbatimQuote: "The worst feeling is presenting something and realizing you missed an obvious angle.",
							Context:       "Question: What makes you hesitate before sharing ideas?",
						},
					},
				},
				{
					ID:          "c2",
					Name:        "Trust Through Transparency",
					Summary:     "Users need to see reasoning to trust decisions",
					EntityCount: 1,
					Entities: []model.Entity{
						{
							ID:            "e3",
							Statement:     "Transparent reasoning builds trust in tools",
							Type:          model.TypeGain,
							Gains:         []string{"Increased adoption", "Trust", "Learning opportunities"},
							Source:        "Interview #49",
							TranscriptID:  "T-034",
							ParticipantID: "P-025",
							Timestamp:     "22:10",
							Date:          "Nov 10, 2024",
							VerbatimQuote: "I don't trust black boxes. If you can't explain why, I won't use it.",
							Context:       "Question: How do you evaluate new tools?",
						},
					},
				},
			},
		},
		{
			ID:           "t2",
			Title:        "Time-sensitive workflows need automation",
			Description:  "Manual processes create bottlenecks in time-critical work. Users need intelligent automation that handles routine tasks without oversight.",
			Sources:      []string{"User Interviews", "Workflow Analysis"},
			ClusterCount: 1,
			Color:        model.ColorGreen,
			Clusters: []model.Cluster{
				{
					ID:          "c3",
					Name:        "Routine Task Automation",
					Summary:     "Repetitive tasks should run without human intervention",
					EntityCount: 1,
					Entities: []model.Entity{
						{
							ID:            "e4",
							Statement:     "When deadlines approach, I want routine tasks automated, so I can focus on high-value work.",
							Type:          model.TypeJTBD,
							Pains:         []string{"Time wasted on routine work", "Missed deadlines"},
							Gains:         []string{"More strategic work time", "Reduced stress"},
							Source:        "Interview #52",
							TranscriptID:  "T-037",
							ParticipantID: "P-028",
							Timestamp:     "12:15",
							Date:          "Nov 12, 2024",
							VerbatimQuote: "Why am I manually doing this every week? A robot should handle this.",
							Context:       "Question: What parts of your job feel like busywork?",
						},
					},
				},
			},
		},
	}}
}
