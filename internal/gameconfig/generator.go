package gameconfig

import (
	"fmt"

	"duke3dmm/internal/strutil"
)

const (
	SectionSetup       = "Setup"
	SectionScreenSetup = "Screen Setup"
	SectionSoundSetup  = "Sound Setup"
	SectionKeyDefs     = "KeyDefinitions"
	SectionControls    = "Controls"
	SectionCommSetup   = "Comm Setup"

	EntrySetupVersion = "SetupVersion"
	EntryFXDevice     = "FXDevice"
	EntryMusicDevice  = "MusicDevice"
	EntryNumBits      = "NumBits"
	EntryMixRate      = "MixRate"
	EntryScreenMode   = "ScreenMode"
	EntryScreenWidth  = "ScreenWidth"
	EntryScreenHeight = "ScreenHeight"

	weaponKeyPrefix   = "Weapon_"
	combatMacroPrefix = "CommbatMacro#"
	phoneNamePrefix   = "PhoneName#"
	phoneNumberPrefix = "PhoneNumber#"

	regularVersionSetupVersion = "1.3D"
	atomicEditionSetupVersion  = "1.4"
)

var defaultCombatMacros = [10]string{
	"An inspiration for birth control.",
	"Nuke 'em until they glow, then shoot 'em in the dark.",
	"Your weapon of choice.",
	"Eat lead!",
	"Game Over.",
	"Don't bother, I've got it covered.",
	"Is that the best you can do?",
	"Come get some!",
	"Hail to the king, baby.",
	"I'm gonna rip off your head and piss down your neck!",
}

// GenerateDefault builds the known-good "Setup/Screen Setup/Sound Setup/
// KeyDefinitions/Controls/Comm Setup" layout, seeded per gameName (spec
// §4.4), grounded verbatim on
// original_source/Source/Configuration/GameConfigurationGenerator.cpp's
// generateDefaultGameConfiguration.
func GenerateDefault(gameName string) (*Document, error) {
	isRegular := strutil.EqualFold(gameName, "Duke Nukem 3D 1.3D")
	isAtomic := strutil.EqualFold(gameName, "Duke Nukem 3D: Atomic Edition 1.5")

	doc := NewDocument()

	setup := NewSection(SectionSetup, "", " ; Setup File for Duke Nukem 3D")
	if err := doc.AddSection(setup); err != nil {
		return nil, err
	}
	if isRegular {
		mustAddString(setup, EntrySetupVersion, regularVersionSetupVersion)
	} else if isAtomic {
		mustAddString(setup, EntrySetupVersion, atomicEditionSetupVersion)
	}

	screen := NewSection(SectionScreenSetup, " \n ")
	screen.FollowingComments = " \n \n" +
		"ScreenMode\n" +
		" - Chained - 0\n" +
		" - Vesa 2.0 - 1\n" +
		" - Screen Buffered - 2\n" +
		" - Tseng optimized - 3\n" +
		" - Paradise optimized - 4\n" +
		" - S3 optimized - 5\n" +
		" - RedBlue Stereo - 7\n" +
		" - Crystal Eyes - 6\n \n" +
		"ScreenWidth passed to engine\n \n" +
		"ScreenHeight passed to engine\n \n "
	if err := doc.AddSection(screen); err != nil {
		return nil, err
	}
	mustAddInt(screen, EntryScreenMode, 2)
	mustAddInt(screen, EntryScreenWidth, 320)
	mustAddInt(screen, EntryScreenHeight, 200)

	sound := NewSection(SectionSoundSetup, " \n ", " \n ")
	if err := doc.AddSection(sound); err != nil {
		return nil, err
	}
	mustAddInt(sound, EntryFXDevice, 13)
	mustAddInt(sound, EntryMusicDevice, 13)
	mustAddInt(sound, "FXVolume", 220)
	mustAddInt(sound, "MusicVolume", 200)
	mustAddInt(sound, "NumVoices", 8)
	mustAddInt(sound, "NumChannels", 2)
	mustAddInt(sound, EntryNumBits, 1)
	mustAddInt(sound, EntryMixRate, 11000)
	mustAddHex(sound, "MidiPort", 0x330)
	mustAddHex(sound, "BlasterAddress", 0x220)
	mustAddInt(sound, "BlasterType", 6)
	mustAddInt(sound, "BlasterInterrupt", 7)
	mustAddInt(sound, "BlasterDma8", 1)
	mustAddInt(sound, "BlasterDma16", 5)
	mustAddHex(sound, "BlasterEmu", 0x620)
	mustAddInt(sound, "ReverseStereo", 0)

	keys := NewSection(SectionKeyDefs, " \n ", " \n ")
	if err := doc.AddSection(keys); err != nil {
		return nil, err
	}
	addDefaultKeyBindings(keys)

	controls := NewSection(SectionControls, " \n ")
	controls.FollowingComments = " \n \nControls\n \nControllerType\n" +
		" - Keyboard                  - 0\n" +
		" - Keyboard and Mouse        - 1\n" +
		" - Keyboard and Joystick     - 2\n" +
		" - Keyboard and Gamepad      - 4\n" +
		" - Keyboard and External     - 3\n" +
		" - Keyboard and FlightStick  - 5\n" +
		" - Keyboard and ThrustMaster - 6\n \n "
	if err := doc.AddSection(controls); err != nil {
		return nil, err
	}
	addDefaultControls(controls, isAtomic)

	comm := NewSection(SectionCommSetup, " \n ", " \n ")
	if err := doc.AddSection(comm); err != nil {
		return nil, err
	}
	addDefaultCommSetup(comm, isAtomic)

	return doc, nil
}

func addDefaultKeyBindings(s *Section) {
	mustAddMulti(s, "Move_Forward", "Up", "Kpad8")
	mustAddMulti(s, "Move_Backward", "Down", "Kpad2")
	mustAddMulti(s, "Turn_Left", "Left", "Kpad4")
	mustAddMulti(s, "Turn_Right", "Right", "KPad6")
	mustAddMulti(s, "Strafe", "LAlt", "RAlt")
	mustAddMulti(s, "Fire", "LCtrl", "RCtrl")
	mustAddMulti(s, "Open", "Space", "")
	mustAddMulti(s, "Run", "LShift", "RShift")
	mustAddMulti(s, "AutoRun", "CapLck", "")
	mustAddMulti(s, "Jump", "A", "/")
	mustAddMulti(s, "Crouch", "Z", "")
	mustAddMulti(s, "Look_Up", "PgUp", "Kpad9")
	mustAddMulti(s, "Look_Down", "PgDn", "Kpad3")
	mustAddMulti(s, "Look_Left", "Insert", "Kpad0")
	mustAddMulti(s, "Look_Right", "Delete", "Kpad.")
	mustAddMulti(s, "Strafe_Left", ",", "")
	mustAddMulti(s, "Strafe_Right", ".", "")
	mustAddMulti(s, "Aim_Up", "Home", "KPad7")
	mustAddMulti(s, "Aim_Down", "End", "Kpad1")
	for i := 1; i <= 10; i++ {
		mustAddMulti(s, fmt.Sprintf("%s%d", weaponKeyPrefix, i), fmt.Sprintf("%d", i%10), "")
	}
	mustAddMulti(s, "Inventory", "Enter", "KpdEnt")
	mustAddMulti(s, "Inventory_Left", "[", "")
	mustAddMulti(s, "Inventory_Right", "]", "")
	mustAddMulti(s, "Holo_Duke", "H", "")
	mustAddMulti(s, "Jetpack", "J", "")
	mustAddMulti(s, "NightVision", "N", "")
	mustAddMulti(s, "MedKit", "M", "")
	mustAddMulti(s, "TurnAround", "BakSpc", "")
	mustAddMulti(s, "SendMessage", "T", "")
	mustAddMulti(s, "Map", "Tab", "")
	mustAddMulti(s, "Shrink_Screen", "-", "Kpad-")
	mustAddMulti(s, "Enlarge_Screen", "=", "Kpad+")
	mustAddMulti(s, "Center_View", "KPad5", "")
	mustAddMulti(s, "Holster_Weapon", "ScrLck", "")
	mustAddMulti(s, "Show_Opponents_Weapon", "W", "")
	mustAddMulti(s, "Map_Follow_Mode", "F", "")
	mustAddMulti(s, "See_Coop_View", "K", "")
	mustAddMulti(s, "Mouse_Aiming", "U", "")
	mustAddMulti(s, "Toggle_Crosshair", "I", "")
	mustAddMulti(s, "Steroids", "R", "")
	mustAddMulti(s, "Quick_Kick", "`", "")
	mustAddMulti(s, "Next_Weapon", "'", "")
	mustAddMulti(s, "Previous_Weapon", ";", "")
}

func addDefaultControls(s *Section, isAtomic bool) {
	mustAddInt(s, "ControllerType", 1)
	mustAddInt(s, "JoystickPort", 0)
	mustAddInt(s, "MouseSensitivity", 32768)
	mustAddString(s, "ExternalFilename", "EXTERNAL.EXE")
	mustAddInt(s, "EnableRudder", 0)
	mustAddInt(s, "MouseAiming", 0)
	if isAtomic {
		mustAddInt(s, "MouseAimingFlipped", 0)
	}
	mustAddString(s, "MouseButton0", "Fire")
	mustAddString(s, "MouseButtonClicked0", "")
	mustAddString(s, "MouseButton1", "Strafe")
	mustAddString(s, "MouseButtonClicked1", "Open")
	mustAddString(s, "MouseButton2", "Move_Forward")
	mustAddString(s, "MouseButtonClicked2", "")
	mustAddString(s, "JoystickButton0", "Fire")
	mustAddString(s, "JoystickButtonClicked0", "")
	mustAddString(s, "JoystickButton1", "Strafe")
	mustAddString(s, "JoystickButtonClicked1", "Inventory")
	mustAddString(s, "JoystickButton2", "Run")
	mustAddString(s, "JoystickButtonClicked2", "Jump")
	mustAddString(s, "JoystickButton3", "Open")
	mustAddString(s, "JoystickButtonClicked3", "Crouch")
	mustAddString(s, "JoystickButton4", "Aim_Down")
	mustAddString(s, "JoystickButtonClicked4", "")
	mustAddString(s, "JoystickButton5", "Look_Right")
	mustAddString(s, "JoystickButtonClicked5", "")
	mustAddString(s, "JoystickButton6", "Aim_Up")
	mustAddString(s, "JoystickButtonClicked6", "")
	mustAddString(s, "JoystickButton7", "Look_Left")
	mustAddString(s, "JoystickButtonClicked7", "")
	mustAddString(s, "MouseAnalogAxes0", "analog_turning")
	mustAddString(s, "MouseDigitalAxes0_0", "")
	mustAddString(s, "MouseDigitalAxes0_1", "")
	mustAddInt(s, "MouseAnalogScale0", 65536)
	mustAddString(s, "MouseAnalogAxes1", "analog_moving")
	mustAddString(s, "MouseDigitalAxes1_0", "")
	mustAddString(s, "MouseDigitalAxes1_1", "")
	mustAddInt(s, "MouseAnalogScale1", 65536)
	mustAddString(s, "JoystickAnalogAxes0", "analog_turning")
	mustAddString(s, "JoystickDigitalAxes0_0", "")
	mustAddString(s, "JoystickDigitalAxes0_1", "")
	mustAddInt(s, "JoystickAnalogScale0", 65536)
	mustAddString(s, "JoystickAnalogAxes1", "analog_moving")
	mustAddString(s, "JoystickDigitalAxes1_0", "")
	mustAddString(s, "JoystickDigitalAxes1_1", "")
	mustAddInt(s, "JoystickAnalogScale1", 65536)
	mustAddString(s, "JoystickAnalogAxes2", "analog_strafing")
	mustAddString(s, "JoystickDigitalAxes2_0", "")
	mustAddString(s, "JoystickDigitalAxes2_1", "")
	mustAddInt(s, "JoystickAnalogScale2", 65536)
	mustAddString(s, "JoystickAnalogAxes3", "")
	mustAddString(s, "JoystickDigitalAxes3_0", "Run")
	mustAddString(s, "JoystickDigitalAxes3_1", "")
	mustAddInt(s, "JoystickAnalogScale3", 65536)
	mustAddString(s, "GamePadDigitalAxes0_0", "Turn_Left")
	mustAddString(s, "GamePadDigitalAxes0_1", "Turn_Right")
	mustAddString(s, "GamePadDigitalAxes1_0", "Move_Forward")
	mustAddString(s, "GamePadDigitalAxes1_1", "Move_Backward")
}

func addDefaultCommSetup(s *Section, isAtomic bool) {
	mustAddInt(s, "ComPort", 2)
	mustAddEmpty(s, "IrqNumber")
	mustAddEmpty(s, "UartAddress")
	mustAddInt(s, "PortSpeed", 9600)
	mustAddInt(s, "ToneDial", 1)
	mustAddEmpty(s, "SocketNumber")
	mustAddInt(s, "NumberPlayers", 2)
	mustAddString(s, "ModemName", "")
	mustAddString(s, "InitString", "ATZ")
	mustAddString(s, "HangupString", "ATH0=0")
	mustAddString(s, "DialoutString", "")
	mustAddString(s, "PlayerName", "DUKE")
	mustAddString(s, "RTSName", "DUKE.RTS")
	if isAtomic {
		mustAddString(s, "RTSPath", `.\`)
		mustAddString(s, "UserPath", `.\`)
	}
	mustAddString(s, "PhoneNumber", "")
	mustAddInt(s, "ConnectType", 0)
	for i, macro := range defaultCombatMacros {
		mustAddString(s, fmt.Sprintf("%s%d", combatMacroPrefix, i), macro)
	}
	numberOfPhoneNumbers := 10
	if isAtomic {
		numberOfPhoneNumbers = 16
	}
	for i := 0; i < numberOfPhoneNumbers; i++ {
		mustAddString(s, fmt.Sprintf("%s%d", phoneNamePrefix, i), "")
		mustAddString(s, fmt.Sprintf("%s%d", phoneNumberPrefix, i), "")
	}
}

func mustAddInt(s *Section, name string, v int64)    { _ = s.AddIntegerEntry(name, v) }
func mustAddHex(s *Section, name string, v int64)    { _ = s.AddHexadecimalEntry(name, v) }
func mustAddString(s *Section, name, v string)       { _ = s.AddStringEntry(name, v) }
func mustAddEmpty(s *Section, name string)           { _ = s.AddEmptyEntry(name) }
func mustAddMulti(s *Section, name string, v ...string) { _ = s.AddMultiStringEntry(name, v...) }

// UpdateForDOSBox retargets doc to sensible DOSBox-hosted defaults (spec
// §4.4), grounded on
// GameConfiguration::updateForDOSBox. If SetupVersion is unrecognised it
// defaults to Atomic Edition and reports that via the returned bool.
func UpdateForDOSBox(doc *Document) (assumedAtomic bool, err error) {
	setup := doc.GetSection(SectionSetup)
	if setup == nil {
		return false, fmt.Errorf("document has no %q section", SectionSetup)
	}
	versionEntry := setup.GetEntry(EntrySetupVersion)
	if versionEntry == nil || !versionEntry.IsString() {
		return false, fmt.Errorf("document has no string %q entry", EntrySetupVersion)
	}

	isAtomic := false
	switch {
	case strutil.EqualFold(versionEntry.StringValue, regularVersionSetupVersion):
	case strutil.EqualFold(versionEntry.StringValue, atomicEditionSetupVersion):
		isAtomic = true
	default:
		isAtomic = true
		assumedAtomic = true
	}

	screen := doc.GetSection(SectionScreenSetup)
	if screen == nil {
		return assumedAtomic, fmt.Errorf("document has no %q section", SectionScreenSetup)
	}
	sound := doc.GetSection(SectionSoundSetup)
	if sound == nil {
		return assumedAtomic, fmt.Errorf("document has no %q section", SectionSoundSetup)
	}

	mustSetInt(screen, EntryScreenMode, 1)
	mustSetInt(screen, EntryScreenWidth, 800)
	mustSetInt(screen, EntryScreenHeight, 600)
	mustSetInt(screen, "Shadows", 1)
	if isAtomic {
		mustSetString(screen, "Password", "")
	} else {
		mustSetString(screen, "Environment", "")
	}
	mustSetInt(screen, "Detail", 1)
	mustSetInt(screen, "Tilt", 1)
	mustSetInt(screen, "Messages", 1)
	mustSetInt(screen, "Out", 0)
	mustSetInt(screen, "ScreenSize", 4)
	mustSetInt(screen, "ScreenGamma", 0)

	mustSetInt(sound, EntryFXDevice, 0)
	mustSetInt(sound, EntryMusicDevice, 0)
	mustSetInt(sound, EntryNumBits, 16)
	if isAtomic {
		mustSetInt(sound, EntryMixRate, 44000)
	} else {
		mustSetInt(sound, EntryMixRate, 22000)
	}
	mustSetInt(sound, "SoundToggle", 1)
	mustSetInt(sound, "VoiceToggle", 1)
	mustSetInt(sound, "AmbienceToggle", 1)
	mustSetInt(sound, "MusicToggle", 1)

	return assumedAtomic, nil
}

func mustSetInt(s *Section, name string, v int64) { _ = s.SetIntegerValue(name, v, true) }
func mustSetString(s *Section, name, v string)    { _ = s.SetStringValue(name, v, true) }
