package renderer

// Flat colour shader for materials without their own program.
const basicVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uProjectionMatrix;
uniform mat4 uViewMatrix;
uniform mat4 uModelMatrix;

void main() {
    gl_Position = uProjectionMatrix * uViewMatrix * uModelMatrix * vec4(aPosition, 1.0);
}
`

const basicFragmentShader = `
#version 410 core

uniform vec3 uColor;
uniform float uOpacity;

out vec4 FragColor;

void main() {
    FragColor = vec4(uColor, uOpacity);
}
`
