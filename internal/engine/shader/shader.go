// Package shader compiles GLSL programs and holds the skeleton shader.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// SkeletonVertex matches render.Stride: position, uv, rgba.
const SkeletonVertex = `#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 aColor;

uniform mat4 uProjection;

out vec2 vUV;
out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vUV = aUV;
	vColor = aColor;
}
`

// SkeletonFragment tints the page texture by the vertex colour.
const SkeletonFragment = `#version 410 core

in vec2 vUV;
in vec4 vColor;

uniform sampler2D uTexture;

out vec4 FragColor;

void main() {
	FragColor = texture(uTexture, vUV) * vColor;
}
`

// Skeleton is the compiled skeleton program and its uniforms.
type Skeleton struct {
	Program       uint32
	LocProjection int32
	LocTexture    int32
}

// NewSkeleton compiles the skeleton program.
func NewSkeleton() (*Skeleton, error) {
	program, err := CompileProgram(SkeletonVertex, SkeletonFragment)
	if err != nil {
		return nil, fmt.Errorf("skeleton shader: %w", err)
	}
	return &Skeleton{
		Program:       program,
		LocProjection: MustGetUniform(program, "uProjection"),
		LocTexture:    MustGetUniform(program, "uTexture"),
	}, nil
}

// Use binds the program with projection and texture unit 0.
func (s *Skeleton) Use(projection *[16]float32) {
	gl.UseProgram(s.Program)
	gl.UniformMatrix4fv(s.LocProjection, 1, false, &projection[0])
	gl.Uniform1i(s.LocTexture, 0)
}

// Delete frees the program.
func (s *Skeleton) Delete() {
	if s.Program != 0 {
		gl.DeleteProgram(s.Program)
		s.Program = 0
	}
}

// CompileProgram compiles and links a vertex/fragment pair.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compile(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compile(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}
	return program, nil
}

func compile(source string, kind uint32, name string) (uint32, error) {
	s := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csource, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(s, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(s)
		return 0, fmt.Errorf("%s shader: %s", name, msg)
	}
	return s, nil
}

func infoLog(obj uint32,
	getiv func(uint32, uint32, *int32),
	getLog func(uint32, int32, *int32, *uint8),
) string {
	var n int32
	getiv(obj, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	getLog(obj, n, nil, &buf[0])
	return string(buf[:n-1])
}

// MustGetUniform returns a uniform location and panics if the program has
// no active uniform by that name.
func MustGetUniform(program uint32, name string) int32 {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, program))
	}
	return loc
}
