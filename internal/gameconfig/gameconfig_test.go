package gameconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndGenerateRoundTrip(t *testing.T) {
	src := `; leading file comment

[Setup]
; a comment before SetupVersion
SetupVersion = "1.4"

[Screen Setup]
ScreenMode = 2
ScreenWidth = 320
ScreenHeight = 200
; trailing comment for the whole document
`

	doc, diags := Parse([]byte(src))
	require.NotNil(t, doc)
	assert.False(t, diags.HasErrors())

	setup := doc.GetSection("setup")
	require.NotNil(t, setup)
	versionEntry := setup.GetEntry("SetupVersion")
	require.NotNil(t, versionEntry)
	assert.True(t, versionEntry.IsString())
	assert.Equal(t, "1.4", versionEntry.StringValue)
	assert.Contains(t, versionEntry.PrecedingComments, "a comment before SetupVersion")

	screen := doc.GetSection("screen setup")
	require.NotNil(t, screen)
	assert.True(t, screen.GetEntry("ScreenMode").IsInteger())
	assert.Equal(t, int64(320), screen.GetEntry("ScreenWidth").IntegerValue)
	assert.Contains(t, screen.FollowingComments, "trailing comment for the whole document")

	regenerated := Generate(doc)
	doc2, diags2 := Parse(regenerated)
	require.NotNil(t, doc2)
	assert.False(t, diags2.HasErrors())
	assert.Equal(t, "1.4", doc2.GetSection("Setup").GetEntry("SetupVersion").StringValue)
}

func TestParseHexAndMultiString(t *testing.T) {
	src := `[Sound Setup]
MidiPort = 0x330
[KeyDefinitions]
Move_Forward = "Up", "Kpad8"
`
	doc, diags := Parse([]byte(src))
	require.NotNil(t, doc)
	assert.False(t, diags.HasErrors())

	midi := doc.GetSection("Sound Setup").GetEntry("MidiPort")
	require.NotNil(t, midi)
	assert.Equal(t, int64(0x330), midi.IntegerValue)

	forward := doc.GetSection("KeyDefinitions").GetEntry("Move_Forward")
	require.NotNil(t, forward)
	assert.Equal(t, []string{"Up", "Kpad8"}, forward.MultiStringValues)
}

func TestParseRejectsDuplicateEntryAcrossSections(t *testing.T) {
	src := `[Setup]
SetupVersion = "1.4"
[Other]
SetupVersion = "1.4"
`
	doc, diags := Parse([]byte(src))
	assert.Nil(t, doc)
	assert.True(t, diags.HasErrors())
}

func TestParseRejectsMalformedValue(t *testing.T) {
	doc, diags := Parse([]byte("[Setup]\nFoo = bogus\n"))
	assert.Nil(t, doc)
	assert.True(t, diags.HasErrors())
}

func TestGenerateDefaultRegular(t *testing.T) {
	doc, err := GenerateDefault("Duke Nukem 3D 1.3D")
	require.NoError(t, err)

	setup := doc.GetSection(SectionSetup)
	require.NotNil(t, setup)
	assert.Equal(t, regularVersionSetupVersion, setup.GetEntry(EntrySetupVersion).StringValue)

	comm := doc.GetSection(SectionCommSetup)
	require.NotNil(t, comm)
	assert.Nil(t, comm.GetEntry("PhoneName#10"))
	assert.NotNil(t, comm.GetEntry("PhoneName#9"))

	controls := doc.GetSection(SectionControls)
	require.NotNil(t, controls)
	assert.Nil(t, controls.GetEntry("MouseAimingFlipped"))
}

func TestGenerateDefaultAtomic(t *testing.T) {
	doc, err := GenerateDefault("Duke Nukem 3D: Atomic Edition 1.5")
	require.NoError(t, err)

	setup := doc.GetSection(SectionSetup)
	require.NotNil(t, setup)
	assert.Equal(t, atomicEditionSetupVersion, setup.GetEntry(EntrySetupVersion).StringValue)

	comm := doc.GetSection(SectionCommSetup)
	require.NotNil(t, comm)
	assert.NotNil(t, comm.GetEntry("PhoneName#15"))
	assert.Nil(t, comm.GetEntry("PhoneName#16"))

	controls := doc.GetSection(SectionControls)
	require.NotNil(t, controls)
	assert.NotNil(t, controls.GetEntry("MouseAimingFlipped"))
}

func TestUpdateForDOSBoxAtomic(t *testing.T) {
	doc, err := GenerateDefault("Duke Nukem 3D: Atomic Edition 1.5")
	require.NoError(t, err)

	assumedAtomic, err := UpdateForDOSBox(doc)
	require.NoError(t, err)
	assert.False(t, assumedAtomic)

	screen := doc.GetSection(SectionScreenSetup)
	assert.Equal(t, int64(1), screen.GetEntry(EntryScreenMode).IntegerValue)
	assert.Equal(t, int64(800), screen.GetEntry(EntryScreenWidth).IntegerValue)
	assert.Equal(t, int64(600), screen.GetEntry(EntryScreenHeight).IntegerValue)
	assert.NotNil(t, screen.GetEntry("Password"))
	assert.Nil(t, screen.GetEntry("Environment"))

	sound := doc.GetSection(SectionSoundSetup)
	assert.Equal(t, int64(44000), sound.GetEntry(EntryMixRate).IntegerValue)
}

func TestUpdateForDOSBoxUnrecognisedVersionAssumesAtomic(t *testing.T) {
	doc, err := GenerateDefault("Duke Nukem 3D: Atomic Edition 1.5")
	require.NoError(t, err)
	require.NoError(t, doc.GetSection(SectionSetup).SetStringValue(EntrySetupVersion, "9.9", false))

	assumedAtomic, err := UpdateForDOSBox(doc)
	require.NoError(t, err)
	assert.True(t, assumedAtomic)

	sound := doc.GetSection(SectionSoundSetup)
	assert.Equal(t, int64(44000), sound.GetEntry(EntryMixRate).IntegerValue)
}

func TestHasUniqueEntryNames(t *testing.T) {
	doc := NewDocument()
	s1 := NewSection("A", "")
	require.NoError(t, doc.AddSection(s1))
	require.NoError(t, s1.AddIntegerEntry("X", 1))

	s2 := NewSection("B", "")
	require.NoError(t, doc.AddSection(s2))
	require.NoError(t, s2.AddIntegerEntry("Y", 2))
	assert.True(t, doc.HasUniqueEntryNames())

	require.NoError(t, s2.AddIntegerEntry("x", 3))
	assert.False(t, doc.HasUniqueEntryNames())
}

func TestFormatMultiStringValue(t *testing.T) {
	got := formatMultiStringValue([]string{"Up", "Kpad8"})
	assert.True(t, strings.Contains(got, `"Up"`))
	assert.True(t, strings.Contains(got, `"Kpad8"`))
}
